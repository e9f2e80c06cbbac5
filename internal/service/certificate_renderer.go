package service

import (
	"bytes"
	"fmt"

	"learnhub_backend/internal/model"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// DocumentProducer renders the signed certificate artifact. The rest of the
// pipeline only cares about opaque bytes plus a content type.
type DocumentProducer interface {
	Produce(cert *model.Certificate, teacherName string) ([]byte, string, error)
}

const (
	certWidth  = 1200
	certHeight = 850
)

// ImageCertificateRenderer draws the certificate as a PNG.
type ImageCertificateRenderer struct {
	titleFace  font.Face
	nameFace   font.Face
	bodyFace   font.Face
	footerFace font.Face
}

func NewImageCertificateRenderer() (*ImageCertificateRenderer, error) {
	bold, err := truetype.Parse(gobold.TTF)
	if err != nil {
		return nil, err
	}
	regular, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, err
	}

	return &ImageCertificateRenderer{
		titleFace:  truetype.NewFace(bold, &truetype.Options{Size: 56}),
		nameFace:   truetype.NewFace(bold, &truetype.Options{Size: 44}),
		bodyFace:   truetype.NewFace(regular, &truetype.Options{Size: 28}),
		footerFace: truetype.NewFace(regular, &truetype.Options{Size: 20}),
	}, nil
}

func (r *ImageCertificateRenderer) Produce(cert *model.Certificate, teacherName string) ([]byte, string, error) {
	dc := gg.NewContext(certWidth, certHeight)

	dc.SetRGB(1, 1, 1)
	dc.Clear()

	// Border
	dc.SetRGB255(30, 64, 124)
	dc.SetLineWidth(8)
	dc.DrawRectangle(30, 30, certWidth-60, certHeight-60)
	dc.Stroke()

	dc.SetRGB255(30, 64, 124)
	dc.SetFontFace(r.titleFace)
	dc.DrawStringAnchored("Certificate of Completion", certWidth/2, 160, 0.5, 0.5)

	dc.SetRGB255(60, 60, 60)
	dc.SetFontFace(r.bodyFace)
	dc.DrawStringAnchored("This certifies that", certWidth/2, 280, 0.5, 0.5)

	dc.SetRGB255(20, 20, 20)
	dc.SetFontFace(r.nameFace)
	dc.DrawStringAnchored(cert.FullName, certWidth/2, 370, 0.5, 0.5)

	dc.SetRGB255(60, 60, 60)
	dc.SetFontFace(r.bodyFace)
	dc.DrawStringAnchored("has successfully completed the course", certWidth/2, 460, 0.5, 0.5)
	dc.DrawStringAnchored(cert.CourseTitle, certWidth/2, 530, 0.5, 0.5)

	dc.SetFontFace(r.footerFace)
	dc.DrawStringAnchored(
		fmt.Sprintf("Instructor: %s", teacherName),
		certWidth/2, 650, 0.5, 0.5,
	)
	dc.DrawStringAnchored(
		fmt.Sprintf("Issued on %s", cert.IssuedDate.Format("January 2, 2006")),
		certWidth/2, 700, 0.5, 0.5,
	)

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), "image/png", nil
}

package service

import (
	"bytes"
	"image/png"
	"testing"

	"learnhub_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImageCertificateRendererProducesPNG(t *testing.T) {
	renderer, err := NewImageCertificateRenderer()
	require.NoError(t, err)

	cert, err := model.NewCertificate("Ada Lovelace", "ada@example.com", 7, 3, 11, "Go Basics")
	require.NoError(t, err)

	data, contentType, err := renderer.Produce(cert, "Grace Hopper")
	require.NoError(t, err)
	assert.Equal(t, "image/png", contentType)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	bounds := img.Bounds()
	assert.Equal(t, certWidth, bounds.Dx())
	assert.Equal(t, certHeight, bounds.Dy())
}

package listener

import (
	"context"
	"errors"
	"testing"

	"learnhub_backend/internal/event"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCertificateOps struct {
	generated   []uint
	deletedURLs []string
	genErr      error
}

func (f *fakeCertificateOps) GenerateForEnrollment(ctx context.Context, enrollmentID uint) error {
	if f.genErr != nil {
		return f.genErr
	}
	f.generated = append(f.generated, enrollmentID)
	return nil
}

func (f *fakeCertificateOps) DeleteDocument(ctx context.Context, url string) error {
	f.deletedURLs = append(f.deletedURLs, url)
	return nil
}

type fakeReviewRemover struct {
	deleted [][2]uint
}

func (f *fakeReviewRemover) DeleteByCourseAndStudent(courseID, studentID uint) error {
	f.deleted = append(f.deleted, [2]uint{courseID, studentID})
	return nil
}

func TestHandleEnrollmentCompletedGenerates(t *testing.T) {
	certs := &fakeCertificateOps{}
	l := NewCertificateListener(certs, &fakeReviewRemover{})

	ev := event.NewEnrollmentCompletedEvent(5, 11, 7)
	require.NoError(t, l.HandleEnrollmentCompleted(context.Background(), ev))
	assert.Equal(t, []uint{5}, certs.generated)
}

func TestHandleEnrollmentCompletedPropagatesFailure(t *testing.T) {
	certs := &fakeCertificateOps{genErr: errors.New("storage down")}
	l := NewCertificateListener(certs, &fakeReviewRemover{})

	ev := event.NewEnrollmentCompletedEvent(5, 11, 7)
	assert.Error(t, l.HandleEnrollmentCompleted(context.Background(), ev))
}

func TestHandleEnrollmentIncompleteCleansUp(t *testing.T) {
	certs := &fakeCertificateOps{}
	reviews := &fakeReviewRemover{}
	l := NewCertificateListener(certs, reviews)

	ev := event.NewEnrollmentIncompleteEvent(5, 11, 7, "/uploads/certificates/enrollment-5.png")
	require.NoError(t, l.HandleEnrollmentIncomplete(context.Background(), ev))

	assert.Equal(t, []string{"/uploads/certificates/enrollment-5.png"}, certs.deletedURLs)
	assert.Equal(t, [][2]uint{{11, 7}}, reviews.deleted)
}

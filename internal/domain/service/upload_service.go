package service

import (
	"context"
	"io"

	"github.com/campuscare/campuscare-api/internal/domain/entity"
)

// UploadService is the external collaborator holding complaint attachments
// and resolution proofs. The core treats the returned reference as opaque;
// PublicID is only handed back to Delete when a Pending complaint is
// retracted.
type UploadService interface {
	Upload(ctx context.Context, file io.Reader, contentType, folder string) (*entity.Attachment, error)
	Delete(ctx context.Context, publicID string) error
	Close() error
}

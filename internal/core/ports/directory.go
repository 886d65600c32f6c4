package ports

import (
	"context"
	"io"

	"github.com/userdeck/admin-console/internal/core/domain"
)

// DirectoryClient is the upstream REST collaborator that owns persistence
// of users. The console never consumes response bodies beyond the initial
// list fetch.
type DirectoryClient interface {
	FetchUsers(ctx context.Context) ([]domain.User, error)
	CreateUser(ctx context.Context, u domain.User) error
	UpdateUser(ctx context.Context, u domain.User) error
	DeleteUser(ctx context.Context, id int64) error
}

// Uploader is the avatar upload collaborator. It returns the reference
// string stored in a user's image field.
type Uploader interface {
	UploadImage(ctx context.Context, filename string, content io.Reader) (string, error)
}

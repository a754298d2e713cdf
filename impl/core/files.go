package core

import (
	"EnrollHub/entity"
	"context"
	"fmt"
)

// OpenFile checks a signed link and opens the stored screenshot. The caller
// closes the file content.
func (c *Core) OpenFile(ctx context.Context, fileID, expires, signature string) (*entity.StoredFile, error) {
	if c.repo == nil {
		return nil, ErrNoRepository
	}
	if c.links == nil {
		return nil, ErrInvalidFileLink
	}
	if err := c.links.Check(fileID, expires, signature); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFileLink, err)
	}
	return c.repo.OpenFile(ctx, fileID)
}

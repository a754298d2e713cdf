package repository

import (
	"EnrollHub/entity"
	"EnrollHub/internal/lib/sl"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const screenshotBucket = "screenshots"

var ErrFileNotFound = errors.New("file not found")

func (m *MongoDB) bucket(connection *mongo.Client) (*gridfs.Bucket, error) {
	bucket, err := gridfs.NewBucket(connection.Database(m.database), options.GridFSBucket().SetName(screenshotBucket))
	if err != nil {
		return nil, fmt.Errorf("gridfs bucket: %w", err)
	}
	return bucket, nil
}

// UploadFile stores a payment screenshot and returns its id as hex.
func (m *MongoDB) UploadFile(ctx context.Context, filename string, reader io.Reader, meta entity.FileMetadata) (string, error) {
	connection, err := m.connect()
	if err != nil {
		return "", err
	}
	defer m.disconnect(connection)

	bucket, err := m.bucket(connection)
	if err != nil {
		return "", err
	}

	fileID := primitive.NewObjectID()
	stream, err := bucket.OpenUploadStreamWithID(fileID, filename, options.GridFSUpload().SetMetadata(meta))
	if err != nil {
		return "", fmt.Errorf("gridfs open upload: %w", err)
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = stream.SetWriteDeadline(deadline)
	}

	size, err := io.Copy(stream, reader)
	if err != nil {
		_ = stream.Abort()
		return "", fmt.Errorf("gridfs write %s: %w", filename, err)
	}
	if err = stream.Close(); err != nil {
		return "", fmt.Errorf("gridfs close upload: %w", err)
	}

	m.log.With(
		slog.String("file_id", fileID.Hex()),
		slog.String("session_id", meta.SessionID),
		slog.Int64("size", size),
	).Debug("screenshot stored")
	return fileID.Hex(), nil
}

// screenshotReader releases the connection together with the download stream.
type screenshotReader struct {
	*gridfs.DownloadStream
	release func()
}

func (r *screenshotReader) Close() error {
	defer r.release()
	return r.DownloadStream.Close()
}

// OpenFile opens a stored screenshot; the caller closes StoredFile.Content.
func (m *MongoDB) OpenFile(ctx context.Context, id string) (*entity.StoredFile, error) {
	fileID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrFileNotFound
	}

	connection, err := m.connect()
	if err != nil {
		return nil, err
	}
	bucket, err := m.bucket(connection)
	if err != nil {
		m.disconnect(connection)
		return nil, err
	}

	stream, err := bucket.OpenDownloadStream(fileID)
	if err != nil {
		m.disconnect(connection)
		if errors.Is(err, gridfs.ErrFileNotFound) {
			return nil, ErrFileNotFound
		}
		return nil, fmt.Errorf("gridfs open download: %w", err)
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = stream.SetReadDeadline(deadline)
	}

	file := stream.GetFile()
	stored := &entity.StoredFile{
		Name:       file.Name,
		Size:       file.Length,
		UploadedAt: file.UploadDate,
		Content:    &screenshotReader{DownloadStream: stream, release: func() { m.disconnect(connection) }},
	}
	if len(file.Metadata) > 0 {
		if err = bson.Unmarshal(file.Metadata, &stored.Metadata); err != nil {
			m.log.With(slog.String("file_id", id)).Warn("unreadable screenshot metadata", sl.Err(err))
		}
	}
	return stored, nil
}

// DeleteFile removes a stored screenshot. A missing file is not an error.
func (m *MongoDB) DeleteFile(ctx context.Context, id string) error {
	fileID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil
	}

	connection, err := m.connect()
	if err != nil {
		return err
	}
	defer m.disconnect(connection)

	bucket, err := m.bucket(connection)
	if err != nil {
		return err
	}
	err = bucket.DeleteContext(ctx, fileID)
	if err != nil && !errors.Is(err, gridfs.ErrFileNotFound) {
		return fmt.Errorf("gridfs delete: %w", err)
	}
	return nil
}

package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/PedroVerardo/skinone-Upload-Classification/internal/config"
	"github.com/PedroVerardo/skinone-Upload-Classification/internal/logger"
)

// imageFileStorage is the local-filesystem implementation of
// [ImageFileStorage]. Files live under <media root>/<images dir> and are
// named by content hash plus the original extension, so the layout is fully
// content-addressed: the same bytes always map to the same path.
type imageFileStorage struct {
	logger    *logger.Logger
	mediaRoot string
	imagesDir string
}

// NewImageFileStorage constructs an [ImageFileStorage] rooted at the
// configured media directory. The images directory is created on
// construction so that later writes need no existence checks.
func NewImageFileStorage(cfg config.Media, log *logger.Logger) (ImageFileStorage, error) {
	dir := filepath.Join(cfg.Root, cfg.ImagesDir)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.Err(err).Str("func", "NewImageFileStorage").Str("dir", dir).Msg("failed to create images directory")
		return nil, fmt.Errorf("failed to create images directory: %w", err)
	}

	log.Debug().Str("dir", dir).Msg("creating image file storage")

	return &imageFileStorage{
		logger:    log,
		mediaRoot: cfg.Root,
		imagesDir: cfg.ImagesDir,
	}, nil
}

// Save writes data under fileName inside the images directory and returns
// the stored path relative to the media root.
//
// Files are content-addressed, so an existing file with the same name
// already holds the same bytes; in that case the write is skipped and the
// existing path is returned. The write itself goes through a temporary file
// renamed into place, so readers never observe a partially written image.
func (s *imageFileStorage) Save(fileName string, data []byte) (string, error) {
	relativePath := filepath.Join(s.imagesDir, fileName)
	fullPath := filepath.Join(s.mediaRoot, relativePath)

	// same name means same content, skip the write
	if _, err := os.Stat(fullPath); err == nil {
		return relativePath, nil
	}

	tmp, err := os.CreateTemp(filepath.Join(s.mediaRoot, s.imagesDir), ".upload-*")
	if err != nil {
		s.logger.Err(err).Str("func", "*imageFileStorage.Save").Str("file", fileName).Msg("failed to create temporary file")
		return "", fmt.Errorf("failed to create temporary file: %w", err)
	}

	if _, writeErr := tmp.Write(data); writeErr != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		s.logger.Err(writeErr).Str("func", "*imageFileStorage.Save").Str("file", fileName).Msg("failed to write image data")
		return "", fmt.Errorf("failed to write image data: %w", writeErr)
	}

	if closeErr := tmp.Close(); closeErr != nil {
		os.Remove(tmp.Name())
		s.logger.Err(closeErr).Str("func", "*imageFileStorage.Save").Str("file", fileName).Msg("failed to close temporary file")
		return "", fmt.Errorf("failed to close temporary file: %w", closeErr)
	}

	if renameErr := os.Rename(tmp.Name(), fullPath); renameErr != nil {
		os.Remove(tmp.Name())
		s.logger.Err(renameErr).Str("func", "*imageFileStorage.Save").Str("file", fileName).Msg("failed to move image into place")
		return "", fmt.Errorf("failed to move image into place: %w", renameErr)
	}

	return relativePath, nil
}

// Exists reports whether a file with the given name is present in the
// images directory.
func (s *imageFileStorage) Exists(fileName string) bool {
	_, err := os.Stat(filepath.Join(s.mediaRoot, s.imagesDir, fileName))
	return err == nil
}

// Remove deletes the file with the given name. Removing a file that does
// not exist is not an error.
func (s *imageFileStorage) Remove(fileName string) error {
	err := os.Remove(filepath.Join(s.mediaRoot, s.imagesDir, fileName))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		s.logger.Err(err).Str("func", "*imageFileStorage.Remove").Str("file", fileName).Msg("failed to remove image file")
		return fmt.Errorf("failed to remove image file: %w", err)
	}

	return nil
}

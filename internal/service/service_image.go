package service

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/PedroVerardo/skinone-Upload-Classification/internal/config"
	"github.com/PedroVerardo/skinone-Upload-Classification/internal/logger"
	"github.com/PedroVerardo/skinone-Upload-Classification/internal/store"
	"github.com/PedroVerardo/skinone-Upload-Classification/models"
)

// allowedImageExtensions is the closed set of accepted upload extensions,
// keyed by lower-cased extension including the dot.
var allowedImageExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".gif":  {},
	".bmp":  {},
	".webp": {},
}

// imageService is the concrete implementation of ImageService. It owns the
// content-addressed ingestion pipeline: payload normalization, SHA-256
// hashing, dedup lookup, blob write, and metadata insert.
type imageService struct {
	imageRepository store.ImageRepository
	fileStorage     store.ImageFileStorage

	// maxUploadBytes is the ceiling for a single uploaded image.
	maxUploadBytes int64

	// maxBatchSize is the maximum number of images per batch request.
	maxBatchSize int

	logger *logger.Logger
}

// NewImageService constructs an ImageService wired to the given metadata
// repository and blob storage, with upload limits taken from cfg.
func NewImageService(imageRepository store.ImageRepository, fileStorage store.ImageFileStorage, cfg config.App, logger *logger.Logger) ImageService {
	return &imageService{
		imageRepository: imageRepository,
		fileStorage:     fileStorage,
		maxUploadBytes:  cfg.MaxUploadBytes,
		maxBatchSize:    cfg.MaxBatchSize,
		logger:          logger,
	}
}

// Ingest stores one image, deduplicated by content.
//
// The payload is reduced to raw bytes (base64 payloads are decoded after an
// optional "data:<mime>;base64," prefix is stripped), validated against the
// size ceiling and the extension allow-list, and hashed with SHA-256 over the
// exact bytes. A hash hit returns the existing record without touching the
// filesystem. On a miss the blob is written as <hash><ext> under the images
// directory and a metadata row is inserted.
//
// Two concurrent uploads of the same new content may both miss the lookup;
// the insert's unique constraint on file_hash decides the winner and the
// loser re-fetches the winning row. Either way the caller receives the
// canonical record; isNew reports whether this call created it.
func (s *imageService) Ingest(ctx context.Context, owner models.User, payload models.UploadPayload) (models.Image, bool, error) {
	log := logger.FromContext(ctx)

	data, err := s.payloadBytes(payload)
	if err != nil {
		return models.Image{}, false, err
	}

	extension, err := imageExtension(payload.Filename)
	if err != nil {
		log.Error().Str("filename", payload.Filename).Msg("rejected file type")
		return models.Image{}, false, err
	}

	digest := sha256.Sum256(data)
	fileHash := hex.EncodeToString(digest[:])

	existing, err := s.imageRepository.FindImageByHash(ctx, fileHash)
	if err == nil {
		log.Info().Str("file_hash", fileHash).Int64("image_id", existing.ImageID).Msg("dedup hit, returning existing image")
		return existing, false, nil
	}
	if !errors.Is(err, store.ErrImageNotFound) {
		log.Err(err).Str("file_hash", fileHash).Msg("image lookup by hash failed")
		return models.Image{}, false, fmt.Errorf("image lookup by hash failed: %w", err)
	}

	filePath, err := s.fileStorage.Save(fileHash+extension, data)
	if err != nil {
		log.Err(err).Str("file_hash", fileHash).Msg("failed to persist image bytes")
		return models.Image{}, false, fmt.Errorf("failed to persist image bytes: %w", err)
	}

	ownerID := owner.UserID
	image := models.Image{
		FileHash:         fileHash,
		FilePath:         filePath,
		OriginalFilename: payload.Filename,
		Description:      payload.Description,
		FileSize:         int64(len(data)),
		UploadedBy:       &ownerID,
	}

	created, err := s.imageRepository.CreateImage(ctx, image)
	if err != nil {
		// lost the insert race, the winner's record is authoritative
		if errors.Is(err, store.ErrHashAlreadyExists) {
			winner, findErr := s.imageRepository.FindImageByHash(ctx, fileHash)
			if findErr != nil {
				log.Err(findErr).Str("file_hash", fileHash).Msg("failed to fetch winning image after insert race")
				return models.Image{}, false, fmt.Errorf("failed to fetch winning image after insert race: %w", findErr)
			}

			log.Info().Str("file_hash", fileHash).Int64("image_id", winner.ImageID).Msg("lost insert race, returning winning image")
			return winner, false, nil
		}

		log.Err(err).Str("file_hash", fileHash).Msg("image record creation failed")
		return models.Image{}, false, fmt.Errorf("image record creation failed: %w", err)
	}

	return created, true, nil
}

// IngestBatch stores up to maxBatchSize images with independent per-item
// outcomes. A batch larger than the cap fails whole before any item runs;
// afterwards a failing item never aborts its siblings.
func (s *imageService) IngestBatch(ctx context.Context, owner models.User, payloads []models.UploadPayload) ([]models.UploadResult, error) {
	log := logger.FromContext(ctx)

	if len(payloads) == 0 {
		return nil, ErrNoImageProvided
	}
	if len(payloads) > s.maxBatchSize {
		log.Error().Int("count", len(payloads)).Int("max", s.maxBatchSize).Msg("batch size cap exceeded")
		return nil, fmt.Errorf("%w: got %d, maximum is %d", ErrBatchTooLarge, len(payloads), s.maxBatchSize)
	}

	results := make([]models.UploadResult, 0, len(payloads))

	for _, payload := range payloads {
		image, isNew, err := s.Ingest(ctx, owner, payload)
		if err != nil {
			results = append(results, models.UploadResult{
				Status: models.UploadStatusError,
				Error:  err.Error(),
			})
			continue
		}

		status := models.UploadStatusUploaded
		if !isNew {
			status = models.UploadStatusDuplicate
		}

		results = append(results, models.UploadResult{
			Image:  image,
			Status: status,
		})
	}

	return results, nil
}

// GetImage retrieves a stored image record by ID.
func (s *imageService) GetImage(ctx context.Context, imageID int64) (models.Image, error) {
	log := logger.FromContext(ctx)

	image, err := s.imageRepository.FindImageByID(ctx, imageID)
	if err != nil {
		log.Err(err).Int64("image_id", imageID).Msg("image search by id failed")
		return models.Image{}, fmt.Errorf("image search by id failed: %w", err)
	}

	return image, nil
}

// ListImages retrieves image records matching the filter, newest first,
// together with the total matching count.
func (s *imageService) ListImages(ctx context.Context, filter models.ImageFilter) ([]models.Image, int64, error) {
	log := logger.FromContext(ctx)

	images, total, err := s.imageRepository.ListImages(ctx, filter)
	if err != nil {
		log.Err(err).Msg("image listing failed")
		return nil, 0, fmt.Errorf("image listing failed: %w", err)
	}

	return images, total, nil
}

// payloadBytes reduces an upload payload to validated raw bytes. Base64
// payloads are decoded after stripping an optional data-URL prefix; the size
// ceiling is enforced on the decoded bytes.
func (s *imageService) payloadBytes(payload models.UploadPayload) ([]byte, error) {
	data := payload.Data

	if len(data) == 0 && payload.Base64Data != "" {
		encoded := payload.Base64Data
		if strings.HasPrefix(encoded, "data:") {
			if _, rest, found := strings.Cut(encoded, ","); found {
				encoded = rest
			}
		}

		decoded, err := base64.StdEncoding.DecodeString(encoded)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidBase64Data, err)
		}
		data = decoded
	}

	if len(data) == 0 {
		return nil, ErrNoImageProvided
	}
	if int64(len(data)) > s.maxUploadBytes {
		return nil, fmt.Errorf("%w: %d bytes, maximum is %d", ErrFileTooLarge, len(data), s.maxUploadBytes)
	}

	return data, nil
}

// imageExtension validates the filename against the extension allow-list and
// returns the lower-cased extension including the dot.
func imageExtension(filename string) (string, error) {
	extension := strings.ToLower(filepath.Ext(filename))
	if _, ok := allowedImageExtensions[extension]; !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidFileType, extension)
	}

	return extension, nil
}

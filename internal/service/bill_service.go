package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"expense-tracker/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrNoFile means the upload request carried no bill image.
var ErrNoFile = errors.New("no bill image attached")

// ExpenseStore persists a normalized expense for a user.
type ExpenseStore interface {
	CreateExpense(ctx context.Context, userID uuid.UUID, data *models.ExpenseData) (*models.Transaction, error)
}

// BillService drives the bill-to-expense pipeline: save the upload, run it
// through the vision model, turn the response into a normalized expense and
// hand it to the store.
type BillService struct {
	extractor BillExtractor
	store     ExpenseStore
	uploadDir string
	logger    *zap.Logger
}

func NewBillService(extractor BillExtractor, store ExpenseStore, uploadDir string, logger *zap.Logger) *BillService {
	if err := os.MkdirAll(uploadDir, 0755); err != nil {
		logger.Warn("Failed to create upload directory", zap.Error(err))
	}

	return &BillService{
		extractor: extractor,
		store:     store,
		uploadDir: uploadDir,
		logger:    logger,
	}
}

// IngestBill runs one uploaded bill image through the pipeline, strictly in
// sequence: save -> extract -> sanitize -> parse -> normalize -> persist.
// Field-level anomalies never fail the request; only the extraction call
// and an unparsable payload do.
func (s *BillService) IngestBill(ctx context.Context, userID uuid.UUID, file io.Reader, fileName string) (*models.Transaction, error) {
	if file == nil {
		return nil, ErrNoFile
	}

	imagePath, err := s.saveUpload(file, fileName)
	if err != nil {
		return nil, err
	}
	// The image is transient: remove it however the pipeline exits, so a
	// failed extraction does not leave files behind.
	defer s.removeUpload(imagePath)

	rawText, err := s.extractor.ExtractBill(ctx, imagePath)
	if err != nil {
		s.logger.Error("Bill extraction failed",
			zap.String("image_path", imagePath),
			zap.Error(err),
		)
		return nil, err
	}

	sanitized := sanitizeExtraction(rawText)

	record, err := parseBillRecords(sanitized)
	if err != nil {
		s.logger.Error("Failed to parse bill extraction",
			zap.String("image_path", imagePath),
			zap.String("sanitized_text", sanitized),
			zap.Error(err),
		)
		return nil, err
	}

	expense := normalizeBillRecord(record, time.Now(), s.logger)

	s.logger.Info("Bill normalized",
		zap.String("title", expense.Title),
		zap.Float64("amount", expense.Amount),
		zap.String("category", expense.Category),
	)

	return s.store.CreateExpense(ctx, userID, expense)
}

// saveUpload writes the uploaded image into the uploads directory under a
// fresh uuid-based name and returns its path.
func (s *BillService) saveUpload(file io.Reader, fileName string) (string, error) {
	path := filepath.Join(s.uploadDir, uuid.New().String()+filepath.Ext(fileName))

	dst, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to save file: %w", err)
	}

	return path, nil
}

// removeUpload deletes the temporary image, best-effort.
func (s *BillService) removeUpload(path string) {
	if err := os.Remove(path); err != nil {
		s.logger.Warn("Failed to remove uploaded bill", zap.String("path", path), zap.Error(err))
		return
	}
	s.logger.Debug("Removed uploaded bill", zap.String("path", path))
}

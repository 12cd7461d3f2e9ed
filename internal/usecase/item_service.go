package usecase

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/shopsense/backend/internal/domain"
)

// ItemService turns images and free-text requests into shopping item lists
type ItemService struct {
	ocr       domain.TextExtractor
	extractor domain.ItemExtractor
}

// NewItemService creates the service over an OCR client and an item extractor
func NewItemService(ocr domain.TextExtractor, extractor domain.ItemExtractor) *ItemService {
	return &ItemService{ocr: ocr, extractor: extractor}
}

// ItemsFromImage extracts text lines from an image, then refines them into
// item names. When refinement fails the raw OCR lines are used as the item
// list, so a flaky extractor never loses the user's input.
func (s *ItemService) ItemsFromImage(ctx context.Context, image []byte) ([]string, error) {
	lines, err := s.ocr.ExtractLines(ctx, image)
	if err != nil {
		return nil, fmt.Errorf("text extraction failed: %w", err)
	}
	if len(lines) == 0 {
		return nil, domain.ErrNoTextDetected
	}

	items, err := s.extractor.ExtractItems(ctx, strings.Join(lines, "\n"))
	if err != nil || len(items) == 0 {
		log.Printf("[ITEMS] Extractor fallback to raw OCR lines: %v", err)
		return lines, nil
	}
	return items, nil
}

// ItemsFromText parses a free-text shopping request into item names. A
// response that cannot be parsed surfaces ErrUnparsableItems so the caller
// can ask the user to rephrase.
func (s *ItemService) ItemsFromText(ctx context.Context, text string) ([]string, error) {
	if strings.TrimSpace(text) == "" {
		return nil, domain.ErrInvalidRequest
	}

	items, err := s.extractor.ExtractItems(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnparsableItems, err)
	}
	if len(items) == 0 {
		return nil, domain.ErrUnparsableItems
	}
	return items, nil
}

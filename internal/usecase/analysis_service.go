package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/veggiekiosk/backend/internal/domain"
)

// visionPrompt is the fixed instructional prompt sent with every scan.
const visionPrompt = `Analyze this image of a vegetable and provide the following information in JSON format:
{
  "vegetable_name": "name of the vegetable",
  "confidence": "confidence percentage (0-100)",
  "description": "brief description of the vegetable",
  "estimated_weight": "estimated weight in grams based on size and type",
  "weight_confidence": "confidence in weight estimation (low/medium/high)",
  "nutritional_info": "brief nutritional information",
  "storage_tips": "how to store this vegetable"
}

Please be as accurate as possible with the weight estimation based on the apparent size of the vegetable in the image.`

// AnalysisConfig holds configuration for the analysis service
type AnalysisConfig struct {
	EnableDebugLogging bool
}

// AnalysisService drives one scan: vision inference, detection parsing, name
// resolution, and pricing. At most one analysis may be in flight per session;
// a concurrent second call is rejected so a stale result can never race a
// fresh one.
type AnalysisService struct {
	vision   domain.VisionClient
	resolver *NameResolver
	inflight sync.Map
	debug    bool
}

// NewAnalysisService creates an analysis service with its dependencies.
func NewAnalysisService(vision domain.VisionClient, resolver *NameResolver, config AnalysisConfig) *AnalysisService {
	return &AnalysisService{
		vision:   vision,
		resolver: resolver,
		debug:    config.EnableDebugLogging,
	}
}

// Analyze runs the scan pipeline for one uploaded image.
// Vision failure is fatal to the scan and surfaces as ErrInferenceFailed.
// Every other failure degrades to a displayable result with Matched=false.
func (s *AnalysisService) Analyze(ctx context.Context, sessionID string, image []byte, mimeType string) (*domain.PricedResult, error) {
	if len(image) == 0 {
		return nil, fmt.Errorf("%w: empty image", domain.ErrInvalidRequest)
	}

	if sessionID != "" {
		if _, busy := s.inflight.LoadOrStore(sessionID, struct{}{}); busy {
			return nil, domain.ErrScanInProgress
		}
		defer s.inflight.Delete(sessionID)
	}

	text, err := s.vision.Generate(ctx, visionPrompt, image, mimeType)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInferenceFailed, err)
	}

	detection, ok := ParseDetection(text)
	if !ok {
		if s.debug {
			log.Printf("[ANALYZE] no parseable JSON in model output (%d bytes), degrading to text result", len(text))
		}
		return &domain.PricedResult{
			VegetableName: "Unknown",
			Description:   text,
			WeightRaw:     "Unable to estimate",
		}, nil
	}

	result := &domain.PricedResult{
		VegetableName:     detection.VegetableName,
		ConfidencePercent: detection.ConfidencePercent,
		WeightRaw:         detection.EstimatedWeightRaw,
		WeightGrams:       ParseWeightGrams(detection.EstimatedWeightRaw),
		WeightConfidence:  detection.WeightConfidence,
		Description:       detection.Description,
		NutritionalInfo:   detection.NutritionalInfo,
		StorageTips:       detection.StorageTips,
	}

	record, err := s.resolver.Resolve(ctx, detection.VegetableName)
	if err != nil {
		// Not found and lookup failure both degrade to an unmatched result;
		// genuine failures were already logged by the resolver.
		if !errors.Is(err, domain.ErrVegetableNotFound) && !errors.Is(err, domain.ErrLookupFailed) {
			log.Printf("[ANALYZE] unexpected resolver error for %q: %v", detection.VegetableName, err)
		}
		return result, nil
	}

	quote := Quote(record, result.WeightGrams)
	result.Matched = true
	result.VegetableID = record.ID
	result.UnitPrice = quote.UnitPrice
	result.TotalPrice = quote.TotalPrice

	if s.debug {
		log.Printf("[ANALYZE] %q matched %q: unit=%.2f total=%.2f (%.0fg)",
			detection.VegetableName, record.Name, quote.UnitPrice, quote.TotalPrice, result.WeightGrams)
	}

	return result, nil
}

package feedback

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"oraculus/internal/model"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// fileState is the on-disk layout: records by node plus the per-node
// feedback-count watermark at last expansion.
type fileState struct {
	Records    map[string][]model.FeedbackRecord `json:"records"`
	Watermarks map[string]int                    `json:"expansion_watermarks,omitempty"`
}

// FileStore keeps feedback in one JSON file, loaded at startup and
// rewritten fully on every mutation. Write volume is low (one record per
// scene at most), so there is no batching.
type FileStore struct {
	path   string
	state  fileState
	logger *zap.Logger
}

var _ Store = (*FileStore)(nil)

// NewFileStore loads the feedback file at path. A missing or corrupt file
// degrades to an empty store with a warning.
func NewFileStore(path string, logger *zap.Logger) *FileStore {
	s := &FileStore{
		path: path,
		state: fileState{
			Records:    make(map[string][]model.FeedbackRecord),
			Watermarks: make(map[string]int),
		},
		logger: logger.Named("FeedbackStore"),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("Could not read feedback file, starting empty",
				zap.String("path", path), zap.Error(err))
		}
		return s
	}
	if err := json.Unmarshal(data, &s.state); err != nil {
		s.logger.Warn("Feedback file is corrupt, starting empty",
			zap.String("path", path), zap.Error(err))
		s.state = fileState{
			Records:    make(map[string][]model.FeedbackRecord),
			Watermarks: make(map[string]int),
		}
		return s
	}
	if s.state.Records == nil {
		s.state.Records = make(map[string][]model.FeedbackRecord)
	}
	if s.state.Watermarks == nil {
		s.state.Watermarks = make(map[string]int)
	}
	s.logger.Info("Feedback store loaded",
		zap.String("path", path), zap.Int("nodes", len(s.state.Records)))
	return s
}

// Add validates the record, assigns an ID when absent and persists.
func (s *FileStore) Add(_ context.Context, record model.FeedbackRecord) error {
	if err := record.Validate(); err != nil {
		return fmt.Errorf("invalid feedback record: %w", err)
	}
	if record.ID == "" {
		record.ID = uuid.NewString()
	}

	s.state.Records[record.NodeID] = append(s.state.Records[record.NodeID], record)
	if err := s.persist(); err != nil {
		s.logger.Warn("Could not save feedback file", zap.Error(err))
		return err
	}
	return nil
}

// SummaryFor scans the node's records; per-node volume is small, so the
// O(records) pass is not cached.
func (s *FileStore) SummaryFor(_ context.Context, nodeID string) model.FeedbackSummary {
	records := s.state.Records[nodeID]
	summary := model.FeedbackSummary{NodeID: nodeID, Count: len(records)}
	if len(records) == 0 {
		return summary
	}

	total := 0
	for _, r := range records {
		total += r.Rating
		if strings.TrimSpace(r.Comment) != "" {
			summary.Comments = append(summary.Comments, r.Comment)
		}
	}
	summary.AverageRating = float64(total) / float64(len(records))

	recent := records
	if len(recent) > recentRecordsCap {
		recent = recent[len(recent)-recentRecordsCap:]
	}
	summary.Recent = append([]model.FeedbackRecord(nil), recent...)
	return summary
}

// NodesEligibleForExpansion applies the two-factor gate and returns node
// IDs sorted for deterministic iteration.
func (s *FileStore) NodesEligibleForExpansion(ctx context.Context, minCount int, minAvg float64) []string {
	var eligible []string
	for nodeID := range s.state.Records {
		summary := s.SummaryFor(ctx, nodeID)
		if summary.Count >= minCount && summary.AverageRating >= minAvg {
			eligible = append(eligible, nodeID)
		}
	}
	sort.Strings(eligible)
	return eligible
}

// ExpansionWatermark returns the stored watermark for nodeID.
func (s *FileStore) ExpansionWatermark(_ context.Context, nodeID string) int {
	return s.state.Watermarks[nodeID]
}

// SetExpansionWatermark stores the watermark and persists.
func (s *FileStore) SetExpansionWatermark(_ context.Context, nodeID string, count int) error {
	if nodeID == "" {
		return fmt.Errorf("node id is required")
	}
	s.state.Watermarks[nodeID] = count
	if err := s.persist(); err != nil {
		s.logger.Warn("Could not save feedback file", zap.Error(err))
		return err
	}
	return nil
}

func (s *FileStore) persist() error {
	data, err := json.MarshalIndent(s.state, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal feedback state: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write feedback file: %w", err)
	}
	return nil
}

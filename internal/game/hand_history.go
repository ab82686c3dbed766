package game

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/goccy/go-json"

	"github.com/lox/holdem/internal/fileutil"
	"github.com/lox/holdem/poker"
)

// HandHistoryWriter interface for writing hand history
type HandHistoryWriter interface {
	WriteHandHistory(handID string, content []byte) error
}

// FileHandHistoryWriter writes hand history to files
type FileHandHistoryWriter struct {
	directory string
}

// NewFileHandHistoryWriter creates a new file-based hand history writer
func NewFileHandHistoryWriter(directory string) *FileHandHistoryWriter {
	return &FileHandHistoryWriter{directory: directory}
}

// WriteHandHistory writes one JSON file per hand
func (w *FileHandHistoryWriter) WriteHandHistory(handID string, content []byte) error {
	filename := filepath.Join(w.directory, fmt.Sprintf("hand_%s.json", handID))
	if err := fileutil.WriteFileAtomic(filename, content, 0o644); err != nil {
		return fmt.Errorf("failed to write hand history file: %w", err)
	}
	return nil
}

// NoOpHandHistoryWriter is a no-op writer for tests
type NoOpHandHistoryWriter struct{}

// WriteHandHistory does nothing (for tests)
func (NoOpHandHistoryWriter) WriteHandHistory(string, []byte) error {
	return nil
}

// HandAction is a single action taken during a hand
type HandAction struct {
	Seat      int       `json:"seat"`
	Player    string    `json:"player"`
	Street    string    `json:"street"`
	Action    Action    `json:"action"`
	Committed int       `json:"committed"`
	PotAfter  int       `json:"pot_after"`
	Reasoning string    `json:"reasoning,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// HandRecord is the serialised history of one hand
type HandRecord struct {
	HandID     string           `json:"hand_id"`
	Number     int              `json:"number"`
	StartTime  time.Time        `json:"start_time"`
	EndTime    time.Time        `json:"end_time"`
	SmallBlind int              `json:"small_blind"`
	BigBlind   int              `json:"big_blind"`
	Dealer     int              `json:"dealer"`
	Players    []PlayerSnapshot `json:"players"`
	Actions    []HandAction     `json:"actions"`
	Illegal    int              `json:"illegal_actions,omitempty"`
	Board      []poker.Card     `json:"board"`
	Showdown   []ShowdownHand   `json:"showdown,omitempty"`
	Pot        int              `json:"pot"`
	Awards     []Award          `json:"awards"`
	Result     string           `json:"result"`
	Error      string           `json:"error,omitempty"`
}

// HandHistory subscribes to a table's events and writes a HandRecord for
// every finished hand.
type HandHistory struct {
	mu      sync.Mutex
	writer  HandHistoryWriter
	logger  *log.Logger
	current *HandRecord
	last    *HandRecord
}

// NewHandHistory creates a recorder that writes through writer
func NewHandHistory(writer HandHistoryWriter, logger *log.Logger) *HandHistory {
	if writer == nil {
		writer = NoOpHandHistoryWriter{}
	}
	return &HandHistory{writer: writer, logger: logger}
}

// Last returns the most recently completed record
func (hh *HandHistory) Last() *HandRecord {
	hh.mu.Lock()
	defer hh.mu.Unlock()
	return hh.last
}

func (hh *HandHistory) OnEvent(event GameEvent) {
	hh.mu.Lock()
	defer hh.mu.Unlock()

	switch e := event.(type) {
	case HandStartEvent:
		snap := e.Snapshot()
		hh.current = &HandRecord{
			HandID:     e.HandID,
			Number:     e.Number,
			StartTime:  e.Timestamp(),
			SmallBlind: snap.SmallBlind,
			BigBlind:   snap.BigBlind,
			Dealer:     e.Dealer,
		}
	case HoleCardsDealtEvent:
		if hh.current != nil {
			hh.current.Players = e.Snapshot().Players
		}
	case PlayerActionEvent:
		if hh.current != nil {
			hh.current.Actions = append(hh.current.Actions, HandAction{
				Seat:      e.Seat,
				Player:    e.Player,
				Street:    e.Street.String(),
				Action:    e.Action,
				Committed: e.Committed,
				PotAfter:  e.PotAfter,
				Reasoning: e.Reasoning,
				Timestamp: e.Timestamp(),
			})
		}
	case IllegalActionEvent:
		if hh.current != nil {
			hh.current.Illegal++
		}
	case ShowdownEvent:
		if hh.current != nil {
			hh.current.Showdown = e.Result.Hands
		}
	case HandEndEvent:
		if hh.current == nil {
			return
		}
		rec := hh.current
		hh.current = nil
		rec.EndTime = e.Timestamp()
		rec.Board = e.Result.Board
		rec.Pot = e.Result.Pot
		rec.Awards = e.Result.Awards
		rec.Result = e.Result.Description
		if e.Result.EndReason != nil {
			rec.Error = e.Result.EndReason.Error()
		}
		hh.last = rec

		if err := hh.write(rec); err != nil && hh.logger != nil {
			hh.logger.Error("failed to write hand history", "hand_id", rec.HandID, "error", err)
		}
	}
}

func (hh *HandHistory) write(rec *HandRecord) error {
	content, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("encode hand %s: %w", rec.HandID, err)
	}
	return hh.writer.WriteHandHistory(rec.HandID, content)
}

// ReadHandRecord decodes a record written by FileHandHistoryWriter
func ReadHandRecord(path string) (*HandRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var rec HandRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return &rec, nil
}

package ui

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/0xlemi/acftune/internal/pitch"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Blocks used to draw spectrum bars, lowest to highest
var barLevels = []rune(" ▁▂▃▄▅▆▇█")

const defaultSpectrumWidth = 64

var (
	// Styles
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			PaddingLeft(2).
			PaddingRight(2).
			MarginBottom(1)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#CCCCCC"))

	flatStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#5FAFFF"))
	sharpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F5F"))
	inTuneStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00FF00"))
	spectrumStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#3030FF"))

	// Note colors
	noteColors = map[string]string{
		"C": "#E8D6B0", // Beige
		"D": "#A020F0", // Purple
		"E": "#FFFF00", // Yellow
		"F": "#FFA500", // Orange
		"G": "#00FF00", // Green
		"A": "#FF0000", // Red
		"B": "#0000FF", // Blue
	}
)

// Returns the box style for a natural note
func getNoteStyle(noteName string) lipgloss.Style {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FAFAFA")).
		Background(lipgloss.Color(noteColors[noteName])).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#333333")).
		Padding(2, 4).
		MarginBottom(1)
}

// Get the next note in the scale (for sharp note colors)
func getNextNote(note string) string {
	switch note {
	case "C":
		return "D"
	case "D":
		return "E"
	case "E":
		return "F"
	case "F":
		return "G"
	case "G":
		return "A"
	case "A":
		return "B"
	default:
		return "C"
	}
}

// Model represents the UI state
type Model struct {
	currentNote *pitch.Note
	rms         float32
	db          float32
	showLevels  bool
	spectrum    []float64
	minDB       float64
	maxDB       float64
	width       int
	height      int
}

// NewModel creates a new UI model. minDB and maxDB bound the spectrum bars.
func NewModel(showLevels bool, minDB, maxDB float64) Model {
	return Model{
		showLevels: showLevels,
		minDB:      minDB,
		maxDB:      maxDB,
	}
}

// Init initializes the UI model
func (m Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(time.Millisecond*100, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// TickMsg represents a timer tick
type TickMsg time.Time

// UpdateNoteMsg is a message to update the current note
type UpdateNoteMsg pitch.Note

// ClearNoteMsg clears the note display when no pitch is detected
type ClearNoteMsg struct{}

// UpdateAudioLevelMsg reports the input level
type UpdateAudioLevelMsg struct {
	RMS float32
	DB  float32
}

// UpdateSpectrumMsg carries the latest spectrum in dB
type UpdateSpectrumMsg []float64

// Update updates the UI model based on messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case TickMsg:
		return m, tick()

	case UpdateNoteMsg:
		note := pitch.Note(msg)
		m.currentNote = &note

	case ClearNoteMsg:
		m.currentNote = nil

	case UpdateAudioLevelMsg:
		m.rms = msg.RMS
		m.db = msg.DB

	case UpdateSpectrumMsg:
		m.spectrum = msg
	}

	return m, nil
}

// View renders the UI
func (m Model) View() string {
	s := titleStyle.Render("ACFTune - Autocorrelation Tuner")
	s += "\n"

	if m.currentNote != nil {
		s += renderNote(*m.currentNote)
		s += "\n"

		info := fmt.Sprintf("Frequency: %.3f Hz | ", m.currentNote.Frequency)
		s += infoStyle.Render(info) + renderDetune(*m.currentNote)
	} else {
		s += infoStyle.Render("Listening for audio...")
	}

	if m.showLevels {
		s += "\n"
		s += infoStyle.Render(fmt.Sprintf("Level: RMS %.4f | %.1f dB", m.rms, m.db))
	}

	if len(m.spectrum) > 0 {
		s += "\n\n"
		s += spectrumStyle.Render(m.renderSpectrum())
	}

	s += "\n\n"
	s += infoStyle.Render("Press q to quit")

	return s
}

func renderNote(note pitch.Note) string {
	noteText := note.String()

	if !strings.HasSuffix(note.Name, "#") {
		return getNoteStyle(note.Name).Render(noteText)
	}

	// Sharps are split between the colors of their two neighbours
	baseNote := string(note.Name[0])
	nextNote := getNextNote(baseNote)

	leftStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FAFAFA")).
		Background(lipgloss.Color(noteColors[baseNote])).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#333333")).
		BorderLeft(true).
		BorderTop(true).
		BorderBottom(true).
		BorderRight(false).
		PaddingLeft(2).
		PaddingRight(1).
		PaddingTop(2).
		PaddingBottom(2)

	rightStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FAFAFA")).
		Background(lipgloss.Color(noteColors[nextNote])).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#333333")).
		BorderLeft(false).
		BorderTop(true).
		BorderBottom(true).
		BorderRight(true).
		PaddingLeft(1).
		PaddingRight(2).
		PaddingTop(2).
		PaddingBottom(2)

	return leftStyle.Render(baseNote) + rightStyle.Render(noteText[1:])
}

func renderDetune(note pitch.Note) string {
	switch note.Detune() {
	case pitch.Flat:
		return flatStyle.Render(fmt.Sprintf("%d cents flat", -note.Cents))
	case pitch.Sharp:
		return sharpStyle.Render(fmt.Sprintf("%d cents sharp", note.Cents))
	default:
		return inTuneStyle.Render("in tune")
	}
}

// renderSpectrum draws one bar per column, taking the loudest bin in each
// group of bins that share a column.
func (m Model) renderSpectrum() string {
	width := defaultSpectrumWidth
	if m.width > 0 && m.width < width {
		width = m.width
	}
	width = min(width, len(m.spectrum))

	perColumn := float64(len(m.spectrum)) / float64(width)
	span := m.maxDB - m.minDB

	var b strings.Builder
	for col := 0; col < width; col++ {
		from := int(float64(col) * perColumn)
		to := max(int(float64(col+1)*perColumn), from+1)

		peak := m.minDB
		for _, db := range m.spectrum[from:to] {
			peak = math.Max(peak, db)
		}

		level := int(math.Round((peak - m.minDB) / span * float64(len(barLevels)-1)))
		level = max(0, min(level, len(barLevels)-1))
		b.WriteRune(barLevels[level])
	}
	return b.String()
}

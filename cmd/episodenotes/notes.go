package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/a-h/episodenotes/client"
	"github.com/a-h/episodenotes/models"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"gopkg.in/yaml.v3"
)

type NotesCommand struct {
	ServerURL   string `help:"The URL of the episode notes server." env:"EPISODE_NOTES_SERVER_URL" default:"http://localhost:8000"`
	File        string `help:"A YAML or JSON file containing the episode." short:"f" default:""`
	ShowName    string `help:"The name of the show."`
	Season      int    `help:"The season number."`
	Episode     int    `help:"The episode number."`
	EpisodeName string `help:"The name of the episode."`
	Overview    string `help:"The episode overview."`
	UserNotes   string `help:"Your own notes on the episode."`
	JSON        bool   `help:"Print the response as JSON instead of formatted text." default:"false"`
	Width       int    `help:"The width to wrap output at." default:"80"`
}

func (c NotesCommand) Run(ctx context.Context) (err error) {
	req, err := c.request()
	if err != nil {
		return err
	}
	nc := client.New(c.ServerURL)

	if c.JSON {
		resp, err := nc.EpisodeNotesPost(ctx, req)
		if err != nil {
			return fmt.Errorf("failed to get episode notes: %w", err)
		}
		e := json.NewEncoder(os.Stdout)
		e.SetIndent("", "  ")
		return e.Encode(resp)
	}

	fetch := func() (models.EpisodeNotesResponse, error) {
		return nc.EpisodeNotesPost(ctx, req)
	}
	p := tea.NewProgram(newNotesModel(req, fetch), tea.WithContext(ctx), tea.WithOutput(os.Stderr))
	final, err := p.Run()
	if err != nil {
		return err
	}
	m := final.(notesModel)
	if m.err != nil {
		return fmt.Errorf("failed to get episode notes: %w", m.err)
	}
	fmt.Println(formatNotes(req, m.resp, c.Width))
	return nil
}

// request reads the file, if given, then applies any flags that were set.
func (c NotesCommand) request() (req models.EpisodeNotesRequest, err error) {
	if c.File != "" {
		if req, err = loadRequestFile(c.File); err != nil {
			return req, err
		}
	}
	if c.ShowName != "" {
		req.ShowName = c.ShowName
	}
	if c.Season != 0 {
		req.Season = models.Int(c.Season)
	}
	if c.Episode != 0 {
		req.Episode = models.Int(c.Episode)
	}
	if c.EpisodeName != "" {
		req.EpisodeName = c.EpisodeName
	}
	if c.Overview != "" {
		req.Overview = c.Overview
	}
	if c.UserNotes != "" {
		req.UserNotes = c.UserNotes
	}
	if req.ShowName == "" {
		return req, errors.New("a show name is required, use --show-name or --file")
	}
	return req, nil
}

// loadRequestFile reads a request from YAML. JSON files are read the same way.
func loadRequestFile(name string) (req models.EpisodeNotesRequest, err error) {
	f, err := os.Open(name)
	if err != nil {
		return req, fmt.Errorf("failed to open request file: %w", err)
	}
	defer f.Close()
	if err = yaml.NewDecoder(f).Decode(&req); err != nil {
		return req, fmt.Errorf("failed to decode request file %s: %w", name, err)
	}
	return req, nil
}

// Dracula color scheme.
var (
	Background = lipgloss.Color("#282a36")
	Foreground = lipgloss.Color("#f8f8f2")
	Comment    = lipgloss.Color("#6272a4")
	Cyan       = lipgloss.Color("#8be9fd")
	Green      = lipgloss.Color("#50fa7b")
	Pink       = lipgloss.Color("#ff79c6")
	Purple     = lipgloss.Color("#bd93f9")
)

var (
	titleStyle   = lipgloss.NewStyle().Background(Background).Foreground(Purple).Bold(true).Padding(0, 1)
	headingStyle = lipgloss.NewStyle().Foreground(Pink).Bold(true).MarginTop(1)
	summaryStyle = lipgloss.NewStyle().Foreground(Foreground)
	bulletStyle  = lipgloss.NewStyle().Foreground(Green)
	emptyStyle   = lipgloss.NewStyle().Foreground(Comment).Italic(true)
	spinnerStyle = lipgloss.NewStyle().Foreground(Cyan)
)

func episodeTitle(req models.EpisodeNotesRequest) string {
	title := fmt.Sprintf("%s S%02dE%02d", req.ShowName, req.Season, req.Episode)
	if req.EpisodeName != "" {
		title += ": " + req.EpisodeName
	}
	return title
}

func formatNotes(req models.EpisodeNotesRequest, resp models.EpisodeNotesResponse, width int) string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render(episodeTitle(req)))
	sb.WriteString("\n")
	sb.WriteString(headingStyle.Render("Summary"))
	sb.WriteString("\n")
	sb.WriteString(summaryStyle.Render(wordwrap.String(strings.TrimSpace(resp.Summary), width)))
	sb.WriteString("\n")
	writeList(&sb, "Key points", resp.KeyPoints, width)
	writeList(&sb, "Questions", resp.Questions, width)
	return sb.String()
}

func writeList(sb *strings.Builder, heading string, items []string, width int) {
	sb.WriteString(headingStyle.Render(heading))
	sb.WriteString("\n")
	if len(items) == 0 {
		sb.WriteString(emptyStyle.Render("None"))
		sb.WriteString("\n")
		return
	}
	for _, item := range items {
		wrapped := wordwrap.String(strings.TrimSpace(item), width-2)
		// Indent continuation lines under the bullet.
		wrapped = strings.ReplaceAll(wrapped, "\n", "\n  ")
		sb.WriteString(bulletStyle.Render("•"))
		sb.WriteString(" ")
		sb.WriteString(wrapped)
		sb.WriteString("\n")
	}
}

type notesResultMsg struct {
	resp models.EpisodeNotesResponse
	err  error
}

type notesModel struct {
	spinner spinner.Model
	title   string
	fetch   func() (models.EpisodeNotesResponse, error)
	done    bool
	resp    models.EpisodeNotesResponse
	err     error
}

func newNotesModel(req models.EpisodeNotesRequest, fetch func() (models.EpisodeNotesResponse, error)) notesModel {
	return notesModel{
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(spinnerStyle)),
		title:   episodeTitle(req),
		fetch:   fetch,
	}
}

func (m notesModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.fetchNotes())
}

func (m notesModel) fetchNotes() tea.Cmd {
	return func() tea.Msg {
		resp, err := m.fetch()
		return notesResultMsg{resp: resp, err: err}
	}
}

func (m notesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case notesResultMsg:
		m.done = true
		m.resp, m.err = msg.resp, msg.err
		return m, tea.Quit
	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "ctrl+c":
			m.done = true
			m.err = context.Canceled
			return m, tea.Quit
		}
		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	default:
		return m, nil
	}
}

func (m notesModel) View() string {
	if m.done {
		return ""
	}
	return fmt.Sprintf("%s Generating notes for %s...\n", m.spinner.View(), m.title)
}

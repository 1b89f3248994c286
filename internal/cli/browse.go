package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/tedil/go-biomart/pkg/errors"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// browseCommand walks interactively from mart to dataset to its attributes.
func (c *CLI) browseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Interactively browse marts, datasets and attributes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			client, _, err := c.newClient()
			if err != nil {
				return err
			}

			logger.Debug("Fetching mart registry", "server", client.Server())
			marts, err := client.Marts(ctx)
			if err != nil {
				return err
			}
			martItems := make([]pickItem, 0, len(marts))
			for _, m := range marts {
				if !m.Visible {
					continue
				}
				martItems = append(martItems, pickItem{Name: m.Name, Detail: m.DisplayName})
			}
			mart, ok, err := pick("Select Mart", martItems)
			if err != nil || !ok {
				return err
			}

			logger.Debug("Fetching datasets", "mart", mart)
			datasets, err := client.Datasets(ctx, mart)
			if err != nil {
				return err
			}
			datasetItems := make([]pickItem, 0, len(datasets))
			for _, d := range datasets {
				datasetItems = append(datasetItems, pickItem{Name: d.Name, Detail: d.Description})
			}
			dataset, ok, err := pick("Select Dataset", datasetItems)
			if err != nil || !ok {
				return err
			}

			logger.Debug("Fetching attributes", "mart", mart, "dataset", dataset)
			attributes, err := client.Attributes(ctx, mart, dataset)
			if err != nil {
				return err
			}

			printInfo("Attributes of %s / %s", StyleHighlight.Render(mart), StyleHighlight.Render(dataset))
			rows := make([][]string, 0, len(attributes))
			for _, a := range attributes {
				rows = append(rows, []string{a.Name, a.Description, a.Page})
			}
			fmt.Println(renderTable([]string{"NAME", "DESCRIPTION", "PAGE"}, rows))
			printDetail("query with: biomart query -m %s -d %s -a <attribute>", mart, dataset)
			return nil
		},
	}
}

// pickItem is one selectable entry in a pick list.
type pickItem struct {
	Name   string
	Detail string
}

// pick runs an interactive list and returns the chosen item's name. The
// second return value is false when the user quit without selecting.
func pick(title string, items []pickItem) (string, bool, error) {
	if len(items) == 0 {
		return "", false, errors.New(errors.ErrCodeNotFound, "nothing to select")
	}
	final, err := tea.NewProgram(newPickModel(title, items)).Run()
	if err != nil {
		return "", false, err
	}
	m := final.(pickModel)
	if m.selected == nil {
		return "", false, nil
	}
	return m.selected.Name, true, nil
}

// pickModel is the bubbletea model behind pick.
type pickModel struct {
	title    string
	items    []pickItem
	cursor   int
	offset   int
	height   int
	selected *pickItem
}

func newPickModel(title string, items []pickItem) pickModel {
	return pickModel{title: title, items: items, height: 15}
}

func (m pickModel) Init() tea.Cmd {
	return nil
}

func (m pickModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				if m.cursor < m.offset {
					m.offset = m.cursor
				}
			}
		case "down", "j":
			if m.cursor < len(m.items)-1 {
				m.cursor++
				if m.cursor >= m.offset+m.height {
					m.offset = m.cursor - m.height + 1
				}
			}
		case "enter":
			m.selected = &m.items[m.cursor]
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.height = msg.Height - 6
		if m.height < 5 {
			m.height = 5
		}
	}
	return m, nil
}

func (m pickModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := m.offset + m.height
	if end > len(m.items) {
		end = len(m.items)
	}

	for i := m.offset; i < end; i++ {
		item := m.items[i]
		cursor := "  "
		if i == m.cursor {
			cursor = "▸ "
		}

		line := fmt.Sprintf("%s%-32s  %s", cursor, item.Name, listDimStyle.Render(item.Detail))
		if i == m.cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.cursor+1, len(m.items))))
	return b.String()
}

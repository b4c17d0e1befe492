package styleexpr

import (
	"fmt"
	"strings"

	"github.com/Delta456/box-cli-maker/v2"
	"github.com/alexeyco/simpletable"
	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// Report renders c's diagnostics as a boxed report, one row per failing
// node, suitable for printing to a terminal during style authoring.
// Compiles with Result == Success render the source and a one-line success
// summary instead of the diagnostics table.
func (c *CompiledExpression) Report(source string) string {
	b := box.New(box.Config{Px: 2, Py: 1, Type: "Double", Color: "Cyan", TitlePos: "Top", ContentAlign: "Left"})

	s := strings.Builder{}
	s.WriteString("Expression:\n")
	s.WriteString("-----------\n")
	s.WriteString(wordWrap(source, 100))
	s.WriteString("\n\n")

	if c.Result == Success {
		s.WriteString(fmt.Sprintf("Compiled OK — type %s, feature-constant=%v, zoom-constant=%v\n",
			c.Type.Name(), c.IsFeatureConstant, c.IsZoomConstant))
		return b.String("EXPRESSION COMPILE REPORT", s.String())
	}

	s.WriteString("Diagnostics:\n")
	s.WriteString("------------\n")
	s.WriteString(c.diagnosticsTable().String())
	return b.String("EXPRESSION COMPILE REPORT", s.String())
}

func (c *CompiledExpression) diagnosticsTable() *simpletable.Table {
	t := simpletable.New()
	t.Header = &simpletable.Header{
		Cells: []*simpletable.Cell{
			{Align: simpletable.AlignCenter, Text: "Key"},
			{Align: simpletable.AlignCenter, Text: "Error"},
		},
	}
	for _, d := range c.Errors {
		t.Body.Cells = append(t.Body.Cells, []*simpletable.Cell{
			{Text: d.Key},
			{Text: d.Error},
		})
	}
	t.SetStyle(simpletable.StyleUnicode)
	return t
}

// FormatValue renders an evaluated Value for human display: numbers use
// thousands separators, colors render as their components, everything else
// falls back to %v.
func FormatValue(v Value) string {
	switch x := v.(type) {
	case float64:
		return humanize.CommafWithDigits(x, 4)
	case Color:
		return fmt.Sprintf("rgba(%s,%s,%s,%s)",
			humanize.CommafWithDigits(x.R, 2), humanize.CommafWithDigits(x.G, 2),
			humanize.CommafWithDigits(x.B, 2), humanize.CommafWithDigits(x.A, 2))
	default:
		return fmt.Sprintf("%v", x)
	}
}

// FormatFeatureProperties renders a feature's properties as a table, for
// debugging which property values a compiled expression actually saw.
func FormatFeatureProperties(f Feature) string {
	tw := table.NewWriter()
	tw.SetTitle("\nFEATURE PROPERTIES\n")
	tw.AppendHeader(table.Row{"Property", "Value"})
	for k, v := range f.Properties {
		tw.AppendRow(table.Row{k, FormatValue(v)})
	}
	style := table.StyleLight
	style.Format.Header = text.FormatDefault
	tw.SetStyle(style)
	return tw.Render()
}

func wordWrap(text string, lineWidth int) string {
	words := strings.Fields(strings.TrimSpace(text))
	if len(words) == 0 {
		return text
	}
	wrapped := words[0]
	spaceLeft := lineWidth - len(wrapped)
	for _, word := range words[1:] {
		if len(word)+1 > spaceLeft {
			wrapped += "\n" + word
			spaceLeft = lineWidth - len(word)
		} else {
			wrapped += " " + word
			spaceLeft -= 1 + len(word)
		}
	}
	return wrapped
}

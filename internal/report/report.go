package report

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/verte-zerg/tenboard/internal/board"
	"github.com/verte-zerg/tenboard/internal/corpus"
	"github.com/verte-zerg/tenboard/internal/layout"
	"github.com/verte-zerg/tenboard/internal/metric"
	"github.com/verte-zerg/tenboard/internal/score"
	"github.com/verte-zerg/tenboard/internal/search"
	"github.com/verte-zerg/tenboard/internal/store"
)

const (
	sparkChars          = " .:-=+*#%@"
	terminalWidthBackup = 80
)

var titleStyle = lipgloss.NewStyle().Bold(true)

// RenderVector prints one layout's metric vector and scalar score.
func RenderVector(w io.Writer, title string, v score.Vector) error {
	if _, err := fmt.Fprintln(w, titleStyle.Render(title)); err != nil {
		return err
	}
	headers := []string{"Metric", "Value", "Direction"}
	rows := make([][]string, 0, len(v.Metrics))
	for _, m := range v.Metrics {
		rows = append(rows, []string{m.Name, fmt.Sprintf("%.6f", m.Value), m.Direction.String()})
	}
	for _, line := range formatTable(headers, rows, map[int]bool{1: true}) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "Score: %.6f\n\n", v.Score); err != nil {
		return err
	}
	return nil
}

// RenderComparison prints several score vectors side by side, one column per
// layout, metrics as rows.
func RenderComparison(w io.Writer, names []string, vectors []score.Vector) error {
	if len(names) != len(vectors) || len(vectors) == 0 {
		return fmt.Errorf("names and vectors must match and be non-empty")
	}
	if _, err := fmt.Fprintln(w, titleStyle.Render("Comparison")); err != nil {
		return err
	}
	headers := append([]string{"Metric"}, names...)
	rightAlign := map[int]bool{}
	for i := 1; i <= len(names); i++ {
		rightAlign[i] = true
	}
	var rows [][]string
	for _, m := range vectors[0].Metrics {
		row := []string{m.Name}
		for _, v := range vectors {
			r, ok := v.Metric(m.Name)
			if !ok {
				row = append(row, "-")
				continue
			}
			row = append(row, fmt.Sprintf("%.6f", r.Value))
		}
		rows = append(rows, row)
	}
	scoreRow := []string{"score"}
	for _, v := range vectors {
		scoreRow = append(scoreRow, fmt.Sprintf("%.6f", v.Score))
	}
	rows = append(rows, scoreRow)
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// RenderLayout prints every character with its chord glyphs, in alphabet
// order.
func RenderLayout(w io.Writer, title string, l *layout.Layout) error {
	if _, err := fmt.Fprintln(w, titleStyle.Render(title)); err != nil {
		return err
	}
	headers := []string{"Char", "Chord", "Keys"}
	alphabet := l.Alphabet()
	rows := make([][]string, 0, len(alphabet))
	for _, ch := range alphabet {
		chord, ok := l.ChordFor(ch)
		if !ok {
			continue
		}
		keys := make([]string, 0, chord.Size())
		for _, k := range chord.Keys() {
			keys = append(keys, k.Finger().String())
		}
		rows = append(rows, []string{charLabel(ch), chord.String(), strings.Join(keys, ", ")})
	}
	for _, line := range formatTable(headers, rows, nil) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// RenderLoads prints the frequency load carried by each finger.
func RenderLoads(w io.Writer, l *layout.Layout, c *corpus.Corpus) error {
	if _, err := fmt.Fprintln(w, titleStyle.Render("Finger load")); err != nil {
		return err
	}
	loads := metric.LoadBalance{}.Loads(l, c)
	headers := []string{"Finger", "Load"}
	rows := make([][]string, 0, len(loads))
	for f := board.Finger(0); int(f) < len(loads); f++ {
		rows = append(rows, []string{f.String(), fmt.Sprintf("%.4f", loads[f])})
	}
	for _, line := range formatTable(headers, rows, map[int]bool{1: true}) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// RenderSearch prints a search run summary with a best-score sparkline.
func RenderSearch(w io.Writer, res search.Result) error {
	if _, err := fmt.Fprintln(w, titleStyle.Render("Search")); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Rounds: %d\n", res.Rounds); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Evaluations: %d\n", res.Evaluations); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Duration: %s\n", res.Duration.Round(time.Millisecond)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Stopped: %s\n", res.Stopped); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Seed score: %.6f\n", res.SeedVector.Score); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Best score: %.6f\n", res.BestVector.Score); err != nil {
		return err
	}
	if spark := Sparkline(downsample(res.History, terminalWidth())); spark != "" {
		if _, err := fmt.Fprintf(w, "Progress: %s\n", spark); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// RenderRuns prints stored runs, newest first.
func RenderRuns(w io.Writer, runs []store.Run) error {
	if len(runs) == 0 {
		_, err := fmt.Fprintln(w, "No runs found.")
		return err
	}
	if _, err := fmt.Fprintln(w, titleStyle.Render("Runs")); err != nil {
		return err
	}
	headers := []string{"ID", "Ended", "Policy", "Corpus", "Rounds", "Seed Score", "Best Score", "Stopped"}
	rows := make([][]string, 0, len(runs))
	for _, r := range runs {
		rows = append(rows, []string{
			fmt.Sprintf("%d", r.ID),
			r.EndedAt.Format("2006-01-02 15:04:05"),
			r.Policy,
			r.CorpusName,
			fmt.Sprintf("%d", r.Rounds),
			fmt.Sprintf("%.6f", r.SeedScore),
			fmt.Sprintf("%.6f", r.BestScore),
			r.Stopped,
		})
	}
	rightAlign := map[int]bool{0: true, 4: true, 5: true, 6: true}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkChars) {
			idx = len(sparkChars) - 1
		}
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// downsample keeps at most width evenly spaced samples.
func downsample(values []float64, width int) []float64 {
	width -= displayWidth("Progress: ")
	if len(values) <= width {
		return values
	}
	if width < 2 {
		return values[len(values)-1:]
	}
	out := make([]float64, width)
	for i := 0; i < width; i++ {
		out[i] = values[i*(len(values)-1)/(width-1)]
	}
	return out
}

func charLabel(ch rune) string {
	switch ch {
	case ' ':
		return "<space>"
	case '\t':
		return "<tab>"
	case '\n':
		return "<newline>"
	default:
		return string(ch)
	}
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}

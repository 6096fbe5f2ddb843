// Package chart renders gap records as standalone echarts HTML documents.
package chart

import (
	"errors"
	"fmt"
	"io"

	"skill-gap/internal/domain/gap"
	"skill-gap/internal/domain/skill"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

type Kind string

const (
	KindRadar   Kind = "radar"
	KindGapBar  Kind = "gap"
	KindBubble  Kind = "bubble"
	KindGrouped Kind = "grouped"
	KindDonut   Kind = "donut"
)

var ErrUnknownKind = errors.New("unknown chart kind")

const (
	bubbleSizeMax  = 50
	bubbleSizeMin  = 4
	defaultWidth   = "900px"
	defaultHeight  = "500px"
	seriesUser     = "Your Skill"
	seriesRequired = "Required Skill"
)

func initOpts(pageTitle string) charts.GlobalOpts {
	return charts.WithInitializationOpts(opts.Initialization{
		PageTitle: pageTitle,
		Width:     defaultWidth,
		Height:    defaultHeight,
	})
}

// Radar overlays user and required levels on one axis per skill, radial range [0,10].
func Radar(job string, records []gap.Record) *charts.Radar {
	indicators := make([]*opts.Indicator, 0, len(records))
	user := make([]float32, 0, len(records))
	required := make([]float32, 0, len(records))
	for _, r := range records {
		indicators = append(indicators, &opts.Indicator{Name: r.Skill, Min: 0, Max: skill.MaxLevel})
		user = append(user, float32(r.UserLevel))
		required = append(required, float32(r.RequiredLevel))
	}

	c := charts.NewRadar()
	c.SetGlobalOptions(
		initOpts("Skill Gap Radar"),
		charts.WithTitleOpts(opts.Title{Title: "Skill Gap Radar for " + job}),
		charts.WithRadarComponentOpts(opts.RadarComponent{
			Indicator:   indicators,
			Shape:       "polygon",
			SplitNumber: 5,
		}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Bottom: "0"}),
	)
	c.AddSeries(seriesUser, []opts.RadarData{{Name: seriesUser, Value: user}},
		charts.WithAreaStyleOpts(opts.AreaStyle{}),
	)
	c.AddSeries(seriesRequired, []opts.RadarData{{Name: seriesRequired, Value: required}},
		charts.WithAreaStyleOpts(opts.AreaStyle{}),
	)
	return c
}

// GapBar is a horizontal bar of the clamped gap per skill on a red scale.
func GapBar(job string, records []gap.Record) *charts.Bar {
	skills := make([]string, 0, len(records))
	data := make([]opts.BarData, 0, len(records))
	for _, r := range records {
		skills = append(skills, r.Skill)
		data = append(data, opts.BarData{
			Name:      r.Skill,
			Value:     r.GapPositive,
			ItemStyle: &opts.ItemStyle{Color: Reds.At(r.GapPositive, skill.MaxLevel)},
		})
	}

	c := charts.NewBar()
	c.SetGlobalOptions(
		initOpts("Skill Gap"),
		charts.WithTitleOpts(opts.Title{Title: "Skill Gap for " + job}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Gap_Positive"}),
	)
	c.SetXAxis(skills).AddSeries("Gap_Positive", data)
	c.XYReversal()
	return c
}

// Bubble plots required level per skill; bubble size and color follow the clamped gap.
// Bubbles are grouped into one series per gap value so each group gets its own color.
func Bubble(job string, records []gap.Record) *charts.Scatter {
	skills := make([]string, 0, len(records))
	groups := map[int][]opts.ScatterData{}
	var order []int
	for _, r := range records {
		skills = append(skills, r.Skill)
		if _, ok := groups[r.GapPositive]; !ok {
			order = append(order, r.GapPositive)
		}
		groups[r.GapPositive] = append(groups[r.GapPositive], opts.ScatterData{
			Name:       r.Skill,
			Value:      []any{r.Skill, r.RequiredLevel},
			SymbolSize: BubbleSize(r.GapPositive),
		})
	}

	c := charts.NewScatter()
	c.SetGlobalOptions(
		initOpts("Skill Gap Bubble Chart"),
		charts.WithTitleOpts(opts.Title{Title: "Skill Gap Bubble Chart for " + job}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Required_Level", Min: 0, Max: skill.MaxLevel}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Bottom: "0"}),
	)
	c.SetXAxis(skills)
	for _, g := range order {
		c.AddSeries(fmt.Sprintf("Gap %d", g), groups[g],
			charts.WithItemStyleOpts(opts.ItemStyle{Color: Oranges.At(g, skill.MaxLevel)}),
		)
	}
	return c
}

// BubbleSize maps a clamped gap in [0,10] onto a symbol size up to bubbleSizeMax.
func BubbleSize(gapPositive int) int {
	size := gapPositive * bubbleSizeMax / skill.MaxLevel
	if size < bubbleSizeMin {
		return bubbleSizeMin
	}
	if size > bubbleSizeMax {
		return bubbleSizeMax
	}
	return size
}

// Grouped places the clamped gap next to the user's level for each skill.
func Grouped(job string, records []gap.Record) *charts.Bar {
	skills := make([]string, 0, len(records))
	gaps := make([]opts.BarData, 0, len(records))
	levels := make([]opts.BarData, 0, len(records))
	for _, r := range records {
		skills = append(skills, r.Skill)
		gaps = append(gaps, opts.BarData{Name: r.Skill, Value: r.GapPositive})
		levels = append(levels, opts.BarData{Name: r.Skill, Value: r.UserLevel})
	}

	c := charts.NewBar()
	c.SetGlobalOptions(
		initOpts("Gap vs Level"),
		charts.WithTitleOpts(opts.Title{Title: "Gap vs Your Level: " + job}),
		charts.WithYAxisOpts(opts.YAxis{Min: 0, Max: skill.MaxLevel}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Bottom: "0"}),
	)
	c.SetXAxis(skills).
		AddSeries("Gap", gaps, charts.WithItemStyleOpts(opts.ItemStyle{Color: Reds.At(7, 10)})).
		AddSeries("Your Level", levels, charts.WithItemStyleOpts(opts.ItemStyle{Color: "#3182BD"}))
	return c
}

// Donut splits the aggregate user level against the remaining gap.
func Donut(job string, records []gap.Record) *charts.Pie {
	s := gap.Summarize(records)
	c := charts.NewPie()
	c.SetGlobalOptions(
		initOpts("Overall Completion"),
		charts.WithTitleOpts(opts.Title{Title: "Overall Completion", Subtitle: job}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Bottom: "0"}),
	)
	c.AddSeries("Completion", []opts.PieData{
		{Name: "Your Level", Value: s.TotalUser, ItemStyle: &opts.ItemStyle{Color: "#31A354"}},
		{Name: "Remaining Gap", Value: s.TotalGap, ItemStyle: &opts.ItemStyle{Color: "#DE2D26"}},
	}, charts.WithPieChartOpts(opts.PieChart{Radius: []string{"45%", "70%"}}))
	return c
}

// Render writes the chart of the given kind as a full HTML document.
func Render(w io.Writer, kind Kind, job string, records []gap.Record) error {
	switch kind {
	case KindRadar:
		return Radar(job, records).Render(w)
	case KindGapBar:
		return GapBar(job, records).Render(w)
	case KindBubble:
		return Bubble(job, records).Render(w)
	case KindGrouped:
		return Grouped(job, records).Render(w)
	case KindDonut:
		return Donut(job, records).Render(w)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}
}

// Report renders the console report page: radar, gap bar and bubble chart.
func Report(w io.Writer, job string, records []gap.Record) error {
	page := components.NewPage()
	page.PageTitle = "Skill Gap Report: " + job
	page.SetLayout(components.PageFlexLayout)
	page.AddCharts(
		Radar(job, records),
		GapBar(job, records),
		Bubble(job, records),
	)
	return page.Render(w)
}

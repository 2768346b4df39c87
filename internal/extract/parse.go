package extract

import (
	"sort"

	"github.com/rs/zerolog/log"

	"github.com/ja-he/wardmap/internal/model"
)

// Parse runs every strategy with the default options.
func Parse(text string) *model.Map {
	return ParseWith(DefaultOptions(), text)
}

// ParseWith runs every strategy over the text and merges the results.
// Recovery events are sorted by line and logged.
func ParseWith(o Options, text string) *model.Map {
	m := &model.Map{}
	events := []model.RecoveryEvent{}
	collect := func(evs []model.RecoveryEvent) { events = append(events, evs...) }

	titles := Titles{o}.Apply(text)
	if len(titles.Elements) > 0 {
		t := titles.Elements[0]
		m.Title = &t
	}
	collect(titles.Events)

	components := Components{o}.Apply(text)
	m.Components = components.Elements
	collect(components.Events)

	notes := Notes{o}.Apply(text)
	m.Notes = notes.Elements
	collect(notes.Events)

	methods := Methods{o}.Apply(text)
	m.Methods = methods.Elements
	collect(methods.Events)

	markets := Markets{o}.Apply(text)
	m.Markets = markets.Elements
	collect(markets.Events)

	ecosystems := Ecosystems{o}.Apply(text)
	m.Ecosystems = ecosystems.Elements
	collect(ecosystems.Events)

	pipelines := Pipelines{o}.Apply(text)
	m.Pipelines = pipelines.Elements
	collect(pipelines.Events)

	attitudes := Attitudes{o}.Apply(text)
	m.Attitudes = attitudes.Elements
	collect(attitudes.Events)

	anchors := Anchors{o}.Apply(text)
	m.Anchors = anchors.Elements
	collect(anchors.Events)

	links := Links{o}.Apply(text)
	m.Links = links.Elements
	collect(links.Events)

	evolutions := Evolutions{o}.Apply(text)
	m.Evolutions = evolutions.Elements
	collect(evolutions.Events)

	sort.SliceStable(events, func(i, j int) bool { return events[i].Line < events[j].Line })
	m.Events = events

	for _, e := range events {
		ev := log.Debug()
		if e.Severity == model.SeverityWarn {
			ev = log.Warn()
		}
		ev.Int("line", e.Line).
			Str("kind", string(e.Kind)).
			Str("reason", string(e.Reason)).
			Str("replacement", e.Replacement).
			Msg(e.Message)
	}

	return m
}

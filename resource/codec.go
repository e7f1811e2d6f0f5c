package resource

import (
	"fmt"

	"github.com/NASA-AMMOS/aerie-sub004/interval"
	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

// rawSegmentDoc is the stored form of a RawSegment. Start and end accept anything cast can read
// as a duration ("90s", "1h30m", or integer nanoseconds); the interval is closed-open unless the
// flags say otherwise.
type rawSegmentDoc struct {
	Start          any  `yaml:"start"`
	End            any  `yaml:"end"`
	StartExclusive bool `yaml:"startExclusive,omitempty"`
	EndInclusive   bool `yaml:"endInclusive,omitempty"`
	Value          any  `yaml:"value"`
}

func (doc rawSegmentDoc) toRawSegment() (RawSegment, error) {
	start, err := cast.ToDurationE(doc.Start)
	if err != nil {
		return RawSegment{}, fmt.Errorf("%w: start %v: %v", ErrBadData, doc.Start, err)
	}

	end, err := cast.ToDurationE(doc.End)
	if err != nil {
		return RawSegment{}, fmt.Errorf("%w: end %v: %v", ErrBadData, doc.End, err)
	}

	startInclusivity, endInclusivity := interval.Inclusive, interval.Exclusive
	if doc.StartExclusive {
		startInclusivity = interval.Exclusive
	}

	if doc.EndInclusive {
		endInclusivity = interval.Inclusive
	}

	return RawSegment{
		Interval: interval.Between(start, end, startInclusivity, endInclusivity),
		Value:    doc.Value,
	}, nil
}

func newRawSegmentDoc(s RawSegment) rawSegmentDoc {
	return rawSegmentDoc{
		Start:          s.Interval.Start.String(),
		End:            s.Interval.End.String(),
		StartExclusive: s.Interval.StartInclusivity == interval.Exclusive,
		EndInclusive:   s.Interval.EndInclusivity == interval.Inclusive,
		Value:          s.Value,
	}
}

func MarshalRawSegments(segments []RawSegment) ([]byte, error) {
	docs := make([]rawSegmentDoc, 0, len(segments))

	for _, s := range segments {
		docs = append(docs, newRawSegmentDoc(s))
	}

	return yaml.Marshal(docs)
}

func UnmarshalRawSegments(d []byte) (segments []RawSegment, err error) {
	var docs []rawSegmentDoc

	if err = yaml.Unmarshal(d, &docs); err != nil {
		err = fmt.Errorf("%w: %v", ErrBadData, err)

		return
	}

	segments = make([]RawSegment, 0, len(docs))

	for _, doc := range docs {
		s, e := doc.toRawSegment()
		if e != nil {
			err = e

			return
		}

		segments = append(segments, s)
	}

	return
}

func marshalRawSegment(s RawSegment) ([]byte, error) {
	return yaml.Marshal(newRawSegmentDoc(s))
}

func unmarshalRawSegment(d []byte) (RawSegment, error) {
	var doc rawSegmentDoc

	if err := yaml.Unmarshal(d, &doc); err != nil {
		return RawSegment{}, fmt.Errorf("%w: %v", ErrBadData, err)
	}

	return doc.toRawSegment()
}

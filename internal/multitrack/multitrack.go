// internal/multitrack/multitrack.go
package multitrack

import (
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/tamzrod/ccd-multitrack/internal/metrics"
	"github.com/tamzrod/ccd-multitrack/internal/track"
)

// DefaultMaxSizeY is used until the driver reports the sensor height.
const DefaultMaxSizeY = 1024

// Publisher receives the validated arrays after every validation pass.
type Publisher interface {
	PublishArray(p Param, values []int32) error
}

// AttributeSink receives per-track attributes for an output frame.
type AttributeSink interface {
	Add(name, description string, value int32)
}

// MultiTrack holds the user track arrays of one sensor and their last
// validated form.
//
// It performs no locking: the owning driver must serialise calls.
type MultiTrack struct {
	maxSizeY int

	userStart []int
	userEnd   []int
	userBin   []int

	result track.Result
	passes uint64

	refiner track.Refiner
	pub     Publisher
	log     *zap.Logger
	metrics *metrics.Metrics
}

// Option configures a MultiTrack.
type Option func(*MultiTrack)

func WithLogger(l *zap.Logger) Option {
	return func(m *MultiTrack) {
		if l != nil {
			m.log = l
		}
	}
}

func WithPublisher(p Publisher) Option {
	return func(m *MultiTrack) { m.pub = p }
}

// WithRefiner installs camera specific constraints applied after the
// default validation.
func WithRefiner(r track.Refiner) Option {
	return func(m *MultiTrack) { m.refiner = r }
}

func WithMetrics(mt *metrics.Metrics) Option {
	return func(m *MultiTrack) { m.metrics = mt }
}

// WithMaxSize sets the initial sensor height without running validation.
func WithMaxSize(n int) Option {
	return func(m *MultiTrack) { m.maxSizeY = n }
}

func New(opts ...Option) *MultiTrack {
	m := &MultiTrack{
		maxSizeY: DefaultMaxSizeY,
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// SetMaxSize sets the sensor height in rows and revalidates.
func (m *MultiTrack) SetMaxSize(maxSizeY int) {
	m.maxSizeY = maxSizeY
	m.validate()
}

func (m *MultiTrack) MaxSize() int {
	return m.maxSizeY
}

// WriteArray replaces one user array. Writing the array that is already
// stored does nothing. Unknown parameters return ErrUnsupportedParam and
// leave all state untouched.
func (m *MultiTrack) WriteArray(p Param, values []int32) error {
	var target *[]int
	switch p {
	case ParamStart:
		target = &m.userStart
	case ParamEnd:
		target = &m.userEnd
	case ParamBin:
		target = &m.userBin
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedParam, p)
	}

	v := make([]int, len(values))
	for i, x := range values {
		v[i] = int(x)
	}
	if slices.Equal(v, *target) {
		return nil
	}

	*target = v
	m.validate()
	return nil
}

// validate rebuilds the validated tracks from the user arrays and
// reports the outcome.
func (m *MultiTrack) validate() {
	m.result = track.NormalizeWith(track.Input{
		Start: m.userStart,
		End:   m.userEnd,
		Bin:   m.userBin,
	}, m.maxSizeY, m.refiner)
	m.passes++

	for _, msg := range m.result.Messages {
		m.log.Warn("CCDMultiTrack: " + msg)
	}

	m.metrics.ObservePass(len(m.result.Regions), m.result.TotalDataHeight(), len(m.result.Messages))
	m.publish()
}

func (m *MultiTrack) publish() {
	if m.pub == nil {
		return
	}

	start, end, bin := m.ValidArrays()
	arrays := map[Param][]int32{
		ParamStart: start,
		ParamEnd:   end,
		ParamBin:   bin,
	}

	for _, p := range Params {
		if err := m.pub.PublishArray(p, arrays[p]); err != nil {
			m.metrics.ObservePublishError()
			m.log.Error("publish validated array failed",
				zap.Stringer("param", p),
				zap.Error(err),
			)
		}
	}
}

// ---- queries ----

// Passes counts the validation passes run so far.
func (m *MultiTrack) Passes() uint64 {
	return m.passes
}

// Size is the number of validated tracks.
func (m *MultiTrack) Size() int {
	return len(m.result.Regions)
}

// ValidTracks returns a copy of the validated tracks.
func (m *MultiTrack) ValidTracks() []track.Region {
	return slices.Clone(m.result.Regions)
}

// Messages returns the diagnostics of the last validation pass.
func (m *MultiTrack) Messages() []string {
	return slices.Clone(m.result.Messages)
}

// ValidArrays returns the validated tracks as start/end/bin arrays.
func (m *MultiTrack) ValidArrays() (start, end, bin []int32) {
	in := track.ToInput(m.result.Regions)
	return toInt32(in.Start), toInt32(in.End), toInt32(in.Bin)
}

// Track returns validated track i, or the zero Region when out of range.
func (m *MultiTrack) Track(i int) track.Region {
	if i < 0 || i >= len(m.result.Regions) {
		return track.Region{}
	}
	return m.result.Regions[i]
}

// DataHeight is the number of output rows of track i, 0 when out of range.
func (m *MultiTrack) DataHeight(i int) int {
	return m.Track(i).DataHeight()
}

// TotalDataHeight is the output height of all tracks after binning.
func (m *MultiTrack) TotalDataHeight() int {
	return m.result.TotalDataHeight()
}

func (m *MultiTrack) inRange(i int) bool {
	return i >= 0 && i < len(m.result.Regions)
}

func (m *MultiTrack) TrackStart(i int) int {
	if !m.inRange(i) {
		return 0
	}
	return m.result.Regions[i].Offset
}

func (m *MultiTrack) TrackEnd(i int) int {
	if !m.inRange(i) {
		return 0
	}
	return m.result.Regions[i].End()
}

func (m *MultiTrack) TrackHeight(i int) int {
	if !m.inRange(i) {
		return 1
	}
	return m.result.Regions[i].Size
}

func (m *MultiTrack) TrackBin(i int) int {
	if !m.inRange(i) {
		return 1
	}
	return m.result.Regions[i].Binning
}

// StoreTrackAttributes adds ROI<k>start, ROI<k>end and ROI<k>bin for
// every validated track, k counting from 1.
func (m *MultiTrack) StoreTrackAttributes(sink AttributeSink) {
	if sink == nil {
		return
	}
	for i, r := range m.result.Regions {
		num := i + 1
		sink.Add(fmt.Sprintf("ROI%dstart", num), fmt.Sprintf("Track %d start", num), int32(r.Offset))
		sink.Add(fmt.Sprintf("ROI%dend", num), fmt.Sprintf("Track %d end", num), int32(r.End()))
		sink.Add(fmt.Sprintf("ROI%dbin", num), fmt.Sprintf("Track %d binning", num), int32(r.Binning))
	}
}

func toInt32(v []int) []int32 {
	out := make([]int32, len(v))
	for i, x := range v {
		out[i] = int32(x)
	}
	return out
}

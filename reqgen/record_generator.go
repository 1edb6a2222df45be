package reqgen

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/pb33f/reqgrid/motor/model"
)

// Regions are the edge locations synthetic requests are served from.
var Regions = []model.Region{
	{Short: "ord", Full: "Chicago"},
	{Short: "fra", Full: "Frankfurt"},
	{Short: "hkg", Full: "Hong Kong"},
	{Short: "lhr", Full: "London"},
	{Short: "nyc", Full: "New York City"},
	{Short: "sfo", Full: "San Francisco"},
	{Short: "sin", Full: "Singapore"},
	{Short: "syd", Full: "Sydney"},
	{Short: "yyz", Full: "Toronto"},
	{Short: "iad", Full: "Washington, D.C."},
}

var (
	methods  = []string{"GET", "POST", "PUT", "PATCH", "DELETE"}
	statuses = []int{200, 200, 200, 201, 204, 400, 401, 403, 404, 429, 500, 502, 503}

	staticPaths = []string{"/", "/api", "/api/auth/login", "/api/auth/refresh", "/healthz", "/metrics", "/search"}
	collections = []string{"users", "orders", "products"}
)

const (
	minLatency = 20
	maxLatency = 300
)

// RecordGenerator builds single synthetic request records
type RecordGenerator struct {
	dict    *Dictionary
	rng     *rand.Rand
	regions []model.Region
	start   time.Time
	span    time.Duration
}

func NewRecordGenerator(dict *Dictionary, rng *rand.Rand, regions []model.Region, start time.Time, span time.Duration) *RecordGenerator {
	if len(regions) == 0 {
		regions = Regions
	}
	return &RecordGenerator{
		dict:    dict,
		rng:     rng,
		regions: regions,
		start:   start,
		span:    span,
	}
}

// GenerateRecord creates one record whose timing phases add up to its latency
func (rg *RecordGenerator) GenerateRecord() model.Record {
	latency := minLatency + rg.rng.Intn(maxLatency-minLatency+1)

	return model.Record{
		Timestamp: rg.randomTimestamp(),
		Status:    statuses[rg.rng.Intn(len(statuses))],
		Method:    methods[rg.rng.Intn(len(methods))],
		Path:      rg.generatePath(),
		Latency:   float64(latency),
		Region:    rg.regions[rg.rng.Intn(len(rg.regions))],
		Timing:    rg.splitLatency(latency),
	}
}

func (rg *RecordGenerator) randomTimestamp() model.Timestamp {
	offset := time.Duration(0)
	if secs := int64(rg.span / time.Second); secs > 0 {
		offset = time.Duration(rg.rng.Int63n(secs)) * time.Second
	}
	return model.NewTimestamp(rg.start.Add(offset))
}

func (rg *RecordGenerator) generatePath() string {
	switch rg.rng.Intn(4) {
	case 0:
		return staticPaths[rg.rng.Intn(len(staticPaths))]
	case 1:
		if rg.rng.Intn(3) == 0 {
			return "/content/articles"
		}
		return "/content/articles/" + rg.dict.Slug(2, rg.rng)
	default:
		collection := "/api/" + collections[rg.rng.Intn(len(collections))]
		if rg.rng.Intn(4) == 0 {
			return collection
		}
		return fmt.Sprintf("%s/%d", collection, 100+rg.rng.Intn(9900))
	}
}

// splitLatency cuts latency into five whole-millisecond phases at four random points.
func (rg *RecordGenerator) splitLatency(latency int) model.TimingPhases {
	cuts := [4]int{}
	for i := range cuts {
		cuts[i] = rg.rng.Intn(latency + 1)
	}
	for i := 1; i < len(cuts); i++ {
		for j := i; j > 0 && cuts[j] < cuts[j-1]; j-- {
			cuts[j], cuts[j-1] = cuts[j-1], cuts[j]
		}
	}

	return model.TimingPhases{
		DNS:        float64(cuts[0]),
		TLS:        float64(cuts[1] - cuts[0]),
		Connection: float64(cuts[2] - cuts[1]),
		TTFB:       float64(cuts[3] - cuts[2]),
		Transfer:   float64(latency - cuts[3]),
	}
}

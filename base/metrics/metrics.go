package metrics

import (
	"fmt"
	"sync"
	"time"

	"github.com/DataDog/datadog-go/statsd"
	"github.com/spf13/viper"

	"github.com/x-xyz/goledger/base/log"
)

const (
	// ddRate is the rate to pass metrics to the datadog agent. 1 means always
	ddRate = 1
	// buffer this many metrics before sending to the statsd agent
	bufferMetrics = 10
)

var (
	initOnce = sync.Once{}

	ddPort   = 8125
	ddClient statsCli
)

type statsCli interface {
	Gauge(name string, value float64, tags []string, rate float64) error
	Count(name string, value int64, tags []string, rate float64) error
	TimeInMilliseconds(name string, value float64, tags []string, rate float64) error
}

func initDDClient() {
	host := viper.GetString("datadog_host")
	addr := fmt.Sprintf("%s:%d", host, ddPort)
	log.Log().WithField("addr", addr).Info("connecting to datadog agent")

	var err error
	ddClient, err = statsd.NewBuffered(addr, bufferMetrics)
	if err != nil {
		log.Log().WithFields(log.Fields{"addr": addr, "err": err}).Panic(
			"can't talk to datadog agent")
	}
}

// Service is the metrics surface used across the ledger
type Service interface {
	BumpCount(key string, val int64, tags ...string)
	BumpGauge(key string, val float64, tags ...string)
	BumpTime(key string, tags ...string) Ender
}

// Ender closes a timing measurement
type Ender interface {
	End()
}

type ddMetrics struct {
	ddTags []string
}

// New returns a metrics service tagged with the app name
func New(appName string) Service {
	return &ddMetrics{
		ddTags: []string{fmt.Sprintf("app:%s", appName)},
	}
}

func (dm *ddMetrics) mergeTags(tags []string) []string {
	merged := make([]string, 0, len(dm.ddTags)+len(tags)/2)
	merged = append(merged, dm.ddTags...)
	for i := 0; i+1 < len(tags); i += 2 {
		merged = append(merged, fmt.Sprintf("%s:%s", tags[i], tags[i+1]))
	}
	return merged
}

func (dm *ddMetrics) BumpCount(key string, val int64, tags ...string) {
	initOnce.Do(initDDClient)
	ddClient.Count(key, val, dm.mergeTags(tags), ddRate)
}

func (dm *ddMetrics) BumpGauge(key string, val float64, tags ...string) {
	initOnce.Do(initDDClient)
	ddClient.Gauge(key, val, dm.mergeTags(tags), ddRate)
}

type timeEnder struct {
	dm    *ddMetrics
	key   string
	tags  []string
	start time.Time
}

func (te *timeEnder) End() {
	elapsed := float64(time.Since(te.start)) / float64(time.Millisecond)
	ddClient.TimeInMilliseconds(te.key, elapsed, te.dm.mergeTags(te.tags), ddRate)
}

func (dm *ddMetrics) BumpTime(key string, tags ...string) Ender {
	initOnce.Do(initDDClient)
	return &timeEnder{dm: dm, key: key, tags: tags, start: time.Now()}
}

package aggregator

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/shirou/gopsutil/v4/load"
	"github.com/shirou/gopsutil/v4/mem"
	"github.com/shirou/gopsutil/v4/process"

	"eventagg/internal/eventpb"
)

const (
	metricsNamespace    = "eventagg"
	selfScrapeTimeout   = 2 * time.Second
	upstreamResultOK    = "ok"
	upstreamResultSoft  = "rejected"
	upstreamResultFail  = "failed"
	upstreamResultSpool = "spooled"
	upstreamResultLost  = "lost"
)

// Metrics holds aggregator counters on a private registry.
// Params: none.
// Returns: metric set; a nil *Metrics is a valid no-op.
type Metrics struct {
	registry *prometheus.Registry

	requests        *prometheus.CounterVec
	eventsReceived  *prometheus.CounterVec
	eventsFiltered  prometheus.Counter
	droppedReported prometheus.Counter
	malformed       prometheus.Counter
	upstreamSends   *prometheus.CounterVec
	upstreamEvents  *prometheus.CounterVec
}

// NewMetrics creates and registers aggregator metrics.
// Params: queueDepth reports admission queue length; logger for self-metric scrape errors.
// Returns: initialized metric set.
func NewMetrics(queueDepth func() float64, logger *slog.Logger) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "add_events_requests_total",
			Help:      "AddEvents calls by reply status code.",
		}, []string{"code"}),
		eventsReceived: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "events_received_total",
			Help:      "Admitted events by source and event type.",
		}, []string{"source_type", "event_type"}),
		eventsFiltered: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "events_filtered_total",
			Help:      "Events discarded by drop_event rules.",
		}),
		droppedReported: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "dropped_task_attempts_total",
			Help:      "Dropped task attempts reported by producers.",
		}),
		malformed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "malformed_task_attempts_total",
			Help:      "Dropped task attempts skipped because they were malformed.",
		}),
		upstreamSends: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "upstream_sends_total",
			Help:      "Forwarded upstream requests by result.",
		}, []string{"upstream", "result"}),
		upstreamEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "upstream_events_total",
			Help:      "Events carried by forwarded upstream requests by result.",
		}, []string{"upstream", "result"}),
	}

	m.registry.MustRegister(
		m.requests,
		m.eventsReceived,
		m.eventsFiltered,
		m.droppedReported,
		m.malformed,
		m.upstreamSends,
		m.upstreamEvents,
		collectors.NewGoCollector(),
		newSelfCollector(logger),
	)
	if queueDepth != nil {
		m.registry.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "admission_queue_depth",
			Help:      "Admitted batches waiting for sink workers.",
		}, queueDepth))
	}

	return m
}

// Registry exposes the private registry for HTTP exposition.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

func (m *Metrics) observeReply(status *eventpb.AddEventStatus) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(status.CanonicalCode().String()).Inc()
}

func (m *Metrics) observeAdmitted(batch *Batch) {
	if m == nil {
		return
	}
	for _, event := range batch.Events {
		m.eventsReceived.WithLabelValues(event.GetSourceType().String(), event.GetEventType().String()).Inc()
	}
	m.droppedReported.Add(float64(len(batch.Dropped)))
}

func (m *Metrics) observeFiltered(count int) {
	if m == nil || count == 0 {
		return
	}
	m.eventsFiltered.Add(float64(count))
}

func (m *Metrics) observeMalformed(count int) {
	if m == nil || count == 0 {
		return
	}
	m.malformed.Add(float64(count))
}

func (m *Metrics) observeUpstream(upstream, result string, events int) {
	if m == nil {
		return
	}
	m.upstreamSends.WithLabelValues(upstream, result).Inc()
	m.upstreamEvents.WithLabelValues(upstream, result).Add(float64(events))
}

// selfCollector exports process and host gauges read through gopsutil.
type selfCollector struct {
	proc   *process.Process
	logger *slog.Logger

	rss        *prometheus.Desc
	cpuPercent *prometheus.Desc
	threads    *prometheus.Desc
	openFiles  *prometheus.Desc
	memUsed    *prometheus.Desc
	load1      *prometheus.Desc
}

// newSelfCollector builds a collector for the current process.
// Params: logger for scrape errors.
// Returns: prometheus collector.
func newSelfCollector(logger *slog.Logger) *selfCollector {
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		proc = nil
		if logger != nil {
			logger.Warn("self metrics: process handle unavailable", slog.String("error", err.Error()))
		}
	}

	desc := func(name, help string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName(metricsNamespace, "self", name), help, nil, nil)
	}
	return &selfCollector{
		proc:       proc,
		logger:     logger,
		rss:        desc("resident_memory_bytes", "Resident set size of the aggregator process."),
		cpuPercent: desc("cpu_percent", "CPU usage of the aggregator process since start."),
		threads:    desc("threads", "OS threads of the aggregator process."),
		openFiles:  desc("open_fds", "Open file descriptors of the aggregator process."),
		memUsed:    desc("host_memory_used_percent", "Used memory of the host."),
		load1:      desc("host_load1", "One minute load average of the host."),
	}
}

func (c *selfCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.rss
	ch <- c.cpuPercent
	ch <- c.threads
	ch <- c.openFiles
	ch <- c.memUsed
	ch <- c.load1
}

// Collect reads current values; unavailable values are skipped.
// Params: ch metric output channel.
// Returns: none.
func (c *selfCollector) Collect(ch chan<- prometheus.Metric) {
	ctx, cancel := context.WithTimeout(context.Background(), selfScrapeTimeout)
	defer cancel()

	if c.proc != nil {
		if info, err := c.proc.MemoryInfoWithContext(ctx); err == nil {
			ch <- prometheus.MustNewConstMetric(c.rss, prometheus.GaugeValue, float64(info.RSS))
		}
		if percent, err := c.proc.CPUPercentWithContext(ctx); err == nil {
			ch <- prometheus.MustNewConstMetric(c.cpuPercent, prometheus.GaugeValue, percent)
		}
		if threads, err := c.proc.NumThreadsWithContext(ctx); err == nil {
			ch <- prometheus.MustNewConstMetric(c.threads, prometheus.GaugeValue, float64(threads))
		}
		if fds, err := c.proc.NumFDsWithContext(ctx); err == nil {
			ch <- prometheus.MustNewConstMetric(c.openFiles, prometheus.GaugeValue, float64(fds))
		}
	}

	if vm, err := mem.VirtualMemoryWithContext(ctx); err == nil {
		ch <- prometheus.MustNewConstMetric(c.memUsed, prometheus.GaugeValue, vm.UsedPercent)
	} else {
		c.logDebug("host memory", err)
	}
	if avg, err := load.AvgWithContext(ctx); err == nil {
		ch <- prometheus.MustNewConstMetric(c.load1, prometheus.GaugeValue, avg.Load1)
	} else {
		c.logDebug("host load", err)
	}
}

func (c *selfCollector) logDebug(what string, err error) {
	if c.logger == nil {
		return
	}
	c.logger.Debug("self metrics scrape failed", slog.String("metric", what), slog.String("error", err.Error()))
}

package db

import (
	"context"
	"sync"
	"time"

	"github.com/ClickHouse/ch-go"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var log = logrus.WithField(
	"module", "db",
)

// DBService persists report snapshots into ClickHouse. Inserts go through
// the low level ch-go client with columnar batches; reads and deletes go
// through the high level client.
type DBService struct {
	ctx           context.Context
	connectionUrl string

	highLevelClient driver.Conn
	lowLevelClient  *ch.Client
	highMu          sync.Mutex
	lowMu           sync.Mutex

	metricsMu      sync.RWMutex
	monitorMetrics map[string]*DBMonitorMetrics
}

func New(ctx context.Context, url string) (*DBService, error) {
	if url == "" {
		return nil, errors.New("db connection url is required")
	}

	s := &DBService{
		ctx:            ctx,
		connectionUrl:  url,
		monitorMetrics: make(map[string]*DBMonitorMetrics),
	}
	s.initMonitorMetrics()

	if err := s.ConnectLowLevel(); err != nil {
		return nil, errors.Wrap(err, "unable to connect low level db client")
	}
	if err := s.ConnectHighLevel(); err != nil {
		return nil, errors.Wrap(err, "unable to connect high level db client")
	}
	return s, nil
}

func (s *DBService) Close() {
	log.Info("closing connection to database server...")
	if s.lowLevelClient != nil {
		if err := s.lowLevelClient.Close(); err != nil {
			log.Errorf("error closing low level client: %s", err.Error())
		}
	}
	if s.highLevelClient != nil {
		if err := s.highLevelClient.Close(); err != nil {
			log.Errorf("error closing high level client: %s", err.Error())
		}
	}
	log.Info("connection to database server closed")
}

// DBMonitorMetrics tracks the persisting performance of a single table.
type DBMonitorMetrics struct {
	Rows        int
	PersistTime time.Duration
	NumPersists int
}

func (m *DBMonitorMetrics) addNewPersist(rows int, elapsed time.Duration) {
	m.Rows = rows
	m.PersistTime = elapsed
	m.NumPersists++
}

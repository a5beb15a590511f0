package db

import (
	"context"
	"time"

	"github.com/ClickHouse/ch-go"
	"github.com/ClickHouse/ch-go/proto"

	"github.com/tellor-io/layerprof/pkg/utils"
)

func (s *DBService) ConnectLowLevel() error {
	ctx := context.Background()

	opts, err := ParseChUrlIntoOptionsLowLevel(s.connectionUrl)
	if err != nil {
		return err
	}
	lowLevelConn, err := ch.Dial(ctx, opts)
	if err == nil {
		s.lowLevelClient = lowLevelConn
		err = s.makeMigrations()
	}
	return err
}

func ParseChUrlIntoOptionsLowLevel(url string) (ch.Options, error) {
	user, password, fqdn, database, err := splitChUrl(url)
	if err != nil {
		return ch.Options{}, err
	}
	return ch.Options{
		Address:  fqdn,
		Database: database,
		User:     user,
		Password: password,
	}, nil
}

func (s *DBService) Persist(
	query string,
	table string,
	input proto.Input,
	rows int) error {

	startTime := time.Now()

	s.lowMu.Lock()
	err := s.lowLevelClient.Do(s.ctx, ch.Query{
		Body:  query,
		Input: input,
	})
	s.lowMu.Unlock()
	elapsedTime := time.Since(startTime)

	if err == nil {
		log.Debugf("table %s persisted %d rows in %.0fms", table, rows, utils.DurationToFloat64Millis(elapsedTime))

		s.metricsMu.Lock()
		s.monitorMetrics[table].addNewPersist(rows, elapsedTime)
		s.metricsMu.Unlock()
	}
	return err
}

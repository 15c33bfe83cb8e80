package database

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"wedplan/internal/platform/config"
)

// TenantContext carries the resolved wedding and its database connection
// through a request. Every tenant entity lives in the wedding's own file,
// so cross-tenant reads are not expressible.
type TenantContext struct {
	WeddingID   string
	WeddingSlug string
	DB          *sql.DB
}

type TenantDBPool struct {
	pools  map[string]*sql.DB
	mu     sync.RWMutex
	config config.TenantDBConfig
}

func NewTenantDBPool(cfg config.TenantDBConfig) *TenantDBPool {
	return &TenantDBPool{
		pools:  make(map[string]*sql.DB),
		config: cfg,
	}
}

func (p *TenantDBPool) Get(weddingID string, dbPath string) (*sql.DB, error) {
	p.mu.RLock()
	if db, exists := p.pools[weddingID]; exists {
		p.mu.RUnlock()
		return db, nil
	}
	p.mu.RUnlock()

	p.mu.Lock()
	defer p.mu.Unlock()

	// Double-check after acquiring write lock
	if db, exists := p.pools[weddingID]; exists {
		return db, nil
	}

	dsn := fmt.Sprintf("%s?cache=shared&mode=rwc", dbPath)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}

	maxConns := p.config.MaxConnectionsPerWedding
	if maxConns <= 0 {
		maxConns = 1
	}
	db.SetMaxOpenConns(maxConns)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	p.pools[weddingID] = db
	return db, nil
}

func (p *TenantDBPool) CloseAll() {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, db := range p.pools {
		db.Close()
	}
	p.pools = make(map[string]*sql.DB)
}

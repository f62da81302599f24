package handlers

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"gypsumplanner/internal/logger"
)

// exportTTL 下载链接有效期
const exportTTL = 10 * time.Minute

// exportTicket 一次导出对应的下载凭据
type exportTicket struct {
	path    string
	name    string
	expires time.Time
}

// exportTickets 一次性下载凭据表；过期的凭据连同导出目录一起清理
type exportTickets struct {
	ttl time.Duration
	now func() time.Time

	mu      sync.Mutex
	byToken map[string]exportTicket
}

func newExportTickets(ttl time.Duration, now func() time.Time) *exportTickets {
	return &exportTickets{ttl: ttl, now: now, byToken: make(map[string]exportTicket)}
}

// issue 登记导出文件并返回下载 token
func (t *exportTickets) issue(path, name string) string {
	token := uuid.NewString()
	t.mu.Lock()
	t.byToken[token] = exportTicket{path: path, name: name, expires: t.now().Add(t.ttl)}
	stale := t.sweepLocked()
	t.mu.Unlock()

	removeExports(stale)
	return token
}

// take 取出并作废 token；不存在或已过期时返回 false
func (t *exportTickets) take(token string) (exportTicket, bool) {
	t.mu.Lock()
	stale := t.sweepLocked()
	ticket, ok := t.byToken[token]
	delete(t.byToken, token)
	t.mu.Unlock()

	removeExports(stale)
	return ticket, ok
}

func (t *exportTickets) sweepLocked() []exportTicket {
	var stale []exportTicket
	now := t.now()
	for token, ticket := range t.byToken {
		if now.After(ticket.expires) {
			stale = append(stale, ticket)
			delete(t.byToken, token)
		}
	}
	return stale
}

// removeExports 删除导出文件所在的独立目录
func removeExports(tickets []exportTicket) {
	for _, ticket := range tickets {
		if err := os.RemoveAll(filepath.Dir(ticket.path)); err != nil {
			logger.Warnf("清理过期导出失败: %v", err)
		}
	}
}

package ticker

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"

	"tradedesk/internal/feed"
	"tradedesk/internal/model"
	"tradedesk/pkg/logger"
)

// 行情ws网关：把最新标记价格推给看板
// 慢客户端直接断开，不阻塞广播
type TickerHandler struct {
	prices   *feed.PriceTable
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}
}

func NewTickerHandler(prices *feed.PriceTable) *TickerHandler {
	return &TickerHandler{
		prices: prices,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		clients: make(map[*websocket.Conn]struct{}),
	}
}

// ServeWS 升级连接，先推一份全量价格快照，之后增量推送
func (th *TickerHandler) ServeWS(ctx *gin.Context) {
	conn, err := th.upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		logger.Warnf("ws upgrade failed: %v", err)
		return
	}

	snapshot, _ := json.Marshal(th.prices.Snapshot())
	_ = conn.WriteMessage(websocket.TextMessage, snapshot)

	th.mu.Lock()
	th.clients[conn] = struct{}{}
	th.mu.Unlock()

	// 读协程只为感知断连
	go func() {
		defer th.drop(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func (th *TickerHandler) drop(conn *websocket.Conn) {
	th.mu.Lock()
	delete(th.clients, conn)
	th.mu.Unlock()
	_ = conn.Close()
}

// Broadcast 向所有客户端推送一个tick
func (th *TickerHandler) Broadcast(tick model.Tick) {
	data, err := json.Marshal(tick)
	if err != nil {
		return
	}

	th.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(th.clients))
	for c := range th.clients {
		conns = append(conns, c)
	}
	th.mu.Unlock()

	for _, c := range conns {
		_ = c.SetWriteDeadline(time.Now().Add(2 * time.Second))
		if err := c.WriteMessage(websocket.TextMessage, data); err != nil {
			th.drop(c)
		}
	}
}

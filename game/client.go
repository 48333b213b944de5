package game

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

const outboxSize = 256

// Per-tick movement plus ball and game-state traffic; anything past this is
// dropped rather than buffered.
const (
	inboundEventRate  = rate.Limit(120)
	inboundEventBurst = 240
)

// Client binds one live connection to the relay: identity, outbound queue,
// and the two pumps. The id doubles as the player identity everywhere and is
// never reused within the process.
type Client struct {
	id      string
	session NetworkSession
	router  *Router
	hub     *Hub
	outbox  chan []byte
	limiter *rate.Limiter
	done    chan struct{}
	once    sync.Once
	log     zerolog.Logger
}

func NewClient(session NetworkSession, router *Router, hub *Hub, log zerolog.Logger) *Client {
	id := uuid.NewString()
	return &Client{
		id:      id,
		session: session,
		router:  router,
		hub:     hub,
		outbox:  make(chan []byte, outboxSize),
		limiter: rate.NewLimiter(inboundEventRate, inboundEventBurst),
		done:    make(chan struct{}),
		log:     log.With().Str("conn", id).Logger(),
	}
}

func (c *Client) ID() string { return c.id }

// Send queues data for the write pump. Non-blocking: a full outbox drops the
// message, delivery is at-most-once.
func (c *Client) Send(data []byte) bool {
	select {
	case c.outbox <- data:
		return true
	case <-c.done:
		return false
	default:
		c.log.Debug().Msg("outbox full, message dropped")
		return false
	}
}

// ReadPump decodes inbound frames and hands them to the router. It owns the
// disconnect transition: when the read side dies, the connection is torn
// down and the leave events fan out.
func (c *Client) ReadPump() {
	defer c.teardown()
	for {
		data, err := c.session.Read()
		if err != nil {
			return
		}
		if !c.limiter.Allow() {
			c.log.Debug().Msg("inbound event dropped by rate limit")
			continue
		}
		c.router.Dispatch(c, data)
	}
}

// WritePump drains the outbox and keeps the connection alive with pings.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()
	for {
		select {
		case data := <-c.outbox:
			if err := c.session.Write(data); err != nil {
				c.closeSession("")
				return
			}
		case <-ticker.C:
			if err := c.session.Ping(); err != nil {
				c.closeSession("")
				return
			}
		case <-c.done:
			return
		}
	}
}

// teardown runs once: drop out of the hub first so fanout for our own leave
// events excludes us, then apply the registry transitions.
func (c *Client) teardown() {
	c.once.Do(func() {
		close(c.done)
		c.hub.Unregister(c.id)
		c.router.HandleDisconnect(c.id)
		c.session.Close("")
		c.log.Info().Msg("disconnected")
	})
}

func (c *Client) closeSession(reason string) {
	c.session.Close(reason)
}

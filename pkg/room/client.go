package room

import (
	"fmt"

	"github.com/gorilla/websocket"
)

// Client is a client connected to the server via websockets
type Client struct {
	// Conn is the underlying websocket connection
	Conn *websocket.Conn

	// ID identifies the connection, a player reconnecting gets a new ID
	ID string

	// PlayerID is the authenticated player
	PlayerID int64

	// send is a channel for sending messages to the client
	send chan interface{}

	// Close is a channel for closing the client
	Close chan string

	// CloseError contains the reason why the connection was closed
	CloseError error
}

// NewClient returns a new client object
func NewClient(conn *websocket.Conn, id string, playerID int64) *Client {
	return &Client{
		Conn:     conn,
		ID:       id,
		PlayerID: playerID,
		send:     make(chan interface{}, 256),
		Close:    make(chan string),
	}
}

// Send send a message to the web client
// It returns false if the client's buffer is full
func (c *Client) Send(msg interface{}) bool {
	select {
	case c.send <- msg:
		return true
	default:
		return false
	}
}

// SendChan returns a read-only channel
func (c *Client) SendChan() <-chan interface{} {
	return c.send
}

// String returns a traceable identifier for the player and connection
func (c *Client) String() string {
	return fmt.Sprintf("%d:%s", c.PlayerID, c.ID)
}

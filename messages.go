package main

import (
	"encoding/json"
	"fmt"
)

// Directions as they appear on the wire. Facing uses the compass names;
// movement commands use up/down/left/right.
const (
	dirNorth = "north"
	dirSouth = "south"
	dirEast  = "east"
	dirWest  = "west"
)

const (
	moveUp    = "up"
	moveDown  = "down"
	moveLeft  = "left"
	moveRight = "right"
)

// Player mirrors the server's authoritative player record. Positions are
// world coordinates; AnimationFrame indexes into the avatar's frame list.
type Player struct {
	ID             string  `json:"id"`
	Username       string  `json:"username"`
	X              float64 `json:"x"`
	Y              float64 `json:"y"`
	Facing         string  `json:"facing"`
	Avatar         string  `json:"avatar"`
	AnimationFrame int     `json:"animationFrame,omitempty"`
}

// AvatarFrames lists the frame image sources per facing. West has no frames
// of its own; it renders as east mirrored.
type AvatarFrames struct {
	North []string `json:"north"`
	South []string `json:"south"`
	East  []string `json:"east"`
}

// AvatarDefinition names a shared set of directional sprite frames.
type AvatarDefinition struct {
	Name   string       `json:"name"`
	Frames AvatarFrames `json:"frames"`
}

// facing returns the frame list for a facing value. West maps to east; the
// mirror transform is applied at draw time. Unknown facings fall back to
// south so a bad record still renders something.
func (a AvatarFrames) facing(dir string) []string {
	switch dir {
	case dirNorth:
		return a.North
	case dirEast, dirWest:
		return a.East
	default:
		return a.South
	}
}

// serverMessage is the closed set of decoded inbound messages. Exactly one
// variant is produced per wire message; unrecognized actions decode to
// unknownMsg rather than an error so the stream keeps flowing.
type serverMessage interface {
	serverAction() string
}

type joinGameMsg struct {
	Success  bool                        `json:"success"`
	PlayerID string                      `json:"playerId"`
	Players  map[string]Player           `json:"players"`
	Avatars  map[string]AvatarDefinition `json:"avatars"`
	Error    string                      `json:"error"`
}

type playerJoinedMsg struct {
	Player Player           `json:"player"`
	Avatar AvatarDefinition `json:"avatar"`
}

type playersMovedMsg struct {
	Players map[string]Player `json:"players"`
}

type playerLeftMsg struct {
	PlayerID string `json:"playerId"`
}

type unknownMsg struct {
	Action string
}

func (joinGameMsg) serverAction() string     { return "join_game" }
func (playerJoinedMsg) serverAction() string { return "player_joined" }
func (playersMovedMsg) serverAction() string { return "players_moved" }
func (playerLeftMsg) serverAction() string   { return "player_left" }
func (m unknownMsg) serverAction() string    { return m.Action }

// decodeServerMessage parses one inbound frame into its variant. A missing
// or unrecognized action is not an error; malformed JSON is.
func decodeServerMessage(data []byte) (serverMessage, error) {
	var head struct {
		Action string `json:"action"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("decode action: %w", err)
	}
	switch head.Action {
	case "join_game":
		var m joinGameMsg
		if err := json.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("decode join_game: %w", err)
		}
		return m, nil
	case "player_joined":
		var m playerJoinedMsg
		if err := json.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("decode player_joined: %w", err)
		}
		return m, nil
	case "players_moved":
		var m playersMovedMsg
		if err := json.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("decode players_moved: %w", err)
		}
		return m, nil
	case "player_left":
		var m playerLeftMsg
		if err := json.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("decode player_left: %w", err)
		}
		return m, nil
	default:
		return unknownMsg{Action: head.Action}, nil
	}
}

// clientMessage is the outbound wire shape. Fields beyond the action are
// omitted when empty so a stop is just {"action":"stop"}.
type clientMessage struct {
	Action    string `json:"action"`
	Username  string `json:"username,omitempty"`
	Direction string `json:"direction,omitempty"`
}

func joinCommand(username string) clientMessage {
	return clientMessage{Action: "join_game", Username: username}
}

func moveCommand(direction string) clientMessage {
	return clientMessage{Action: "move", Direction: direction}
}

func stopCommand() clientMessage {
	return clientMessage{Action: "stop"}
}

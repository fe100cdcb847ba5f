package domain

// PostRoomMessageCommand carries everything needed to append a room message.
type PostRoomMessageCommand struct {
	Room    string
	Author  string
	Content string
}

// PostPrivateMessageCommand carries everything needed to append a private message.
type PostPrivateMessageCommand struct {
	Sender   string
	Receiver string
	Content  string
}

package v1

// BasePath is the prefix of every version 1 route
const BasePath = "/api/v1"

// WebSocketPath is the realtime endpoint. Its connections stay open for a whole session.
const WebSocketPath = BasePath + "/ws"

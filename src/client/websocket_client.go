package client

import (
	"encoding/json"
	"log"
	"time"

	"github.com/gorilla/websocket"
	"gitlab.com/open-soft/go-reversal-bot/src/model"
)

// ListenByBit subscribes to public linear streams (e.g. tickers.BTCUSDC) and
// feeds raw messages into eventChannel. Reconnects forever on any failure.
func ListenByBit(address string, eventChannel chan<- []byte, streams []string, connectionId int64) *websocket.Conn {
	connection, _, err := websocket.DefaultDialer.Dial(address, nil)
	if err != nil {
		log.Printf("ByBit [err_1] WS Events [%s]: %s, wait and reconnect...", address, err.Error())
		time.Sleep(time.Second * 3)
		connectionId++

		return ListenByBit(address, eventChannel, streams, connectionId)
	}

	go func() {
		for {
			_, message, err := connection.ReadMessage()
			if err != nil {
				log.Printf("ByBit [err_2] WS Events, read [%s]: %s", address, err.Error())

				_ = connection.Close()
				log.Printf("ByBit [err_2] WS Events, wait and reconnect...")
				time.Sleep(time.Second * 3)
				connectionId++
				ListenByBit(address, eventChannel, streams, connectionId)
				return
			}

			eventChannel <- message
		}
	}()

	if len(streams) > 0 {
		socketRequest := model.ByBitSocketStreamsRequest{
			Operation: "subscribe",
			Arguments: streams,
		}
		serialized, _ := json.Marshal(socketRequest)
		_ = connection.WriteMessage(websocket.TextMessage, serialized)
	}

	return connection
}

// Command client is a manual CLI for exercising a running matchbookd
// instance: it places, cancels, or modifies a single order and prints
// whatever report comes back.
package main

import (
	"flag"
	"fmt"
	"log"
	"net"
	"os"

	"matchbook/internal/engine"
	"matchbook/internal/protocol"

	"github.com/google/uuid"
)

func main() {
	serverAddr := flag.String("server", "127.0.0.1:9001", "address of the matchbookd instance")
	action := flag.String("action", "add", "action to perform: 'add', 'cancel', or 'modify'")

	orderID := flag.Int64("id", 1, "order id")
	price := flag.Float64("price", 100.0, "limit price")
	qty := flag.Int64("qty", 10, "quantity")
	side := flag.String("side", "buy", "'buy' or 'sell'")
	userID := flag.Int64("user", 1, "user id")
	tif := flag.String("tif", "gtc", "'gtc', 'ioc', or 'fok'")

	flag.Parse()

	conn, err := net.Dial("tcp", *serverAddr)
	if err != nil {
		log.Fatalf("failed to connect to %s: %v", *serverAddr, err)
	}
	defer conn.Close()

	requestID := uuid.New()
	var wire []byte

	switch *action {
	case "add":
		wire = protocol.EncodeAddOrder(protocol.AddOrderCommand{
			RequestID: requestID,
			OrderID:   *orderID,
			Price:     *price,
			Quantity:  *qty,
			IsBuy:     *side == "buy",
			UserID:    *userID,
			TIF:       parseTIF(*tif),
		})
	case "cancel":
		wire = protocol.EncodeCancelOrder(protocol.CancelOrderCommand{
			RequestID: requestID,
			OrderID:   *orderID,
		})
	case "modify":
		wire = protocol.EncodeModifyOrder(protocol.ModifyOrderCommand{
			RequestID:   requestID,
			OrderID:     *orderID,
			NewPrice:    *price,
			NewQuantity: *qty,
		})
	default:
		fmt.Fprintf(os.Stderr, "unknown action %q\n", *action)
		os.Exit(1)
	}

	if _, err := conn.Write(wire); err != nil {
		log.Fatalf("write failed: %v", err)
	}

	buf := make([]byte, 4096)
	n, err := conn.Read(buf)
	if err != nil {
		log.Fatalf("read failed: %v", err)
	}
	printReport(buf[:n])
}

func parseTIF(s string) engine.TimeInForce {
	switch s {
	case "ioc":
		return engine.IOC
	case "fok":
		return engine.FOK
	default:
		return engine.GTC
	}
}

// printReport parses just enough of the wire Report to show a human a
// useful summary; it does not round-trip every field.
func printReport(buf []byte) {
	if len(buf) < 1 {
		fmt.Println("empty report")
		return
	}
	if protocol.ReportType(buf[0]) == protocol.ErrorReport {
		fmt.Printf("error: %s\n", string(buf[1+16+8+8+8+8+8+4:]))
		return
	}
	fmt.Println("execution report received")
}

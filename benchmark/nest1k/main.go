package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/structpb"
	nestGrpc "liyu1981.xyz/nest-monitor-service/pkg/grpc"
)

var maxOwners int = 200
var nestsPerOwner int = 5
var httpHostPort string = "127.0.0.1:1080"
var grpcHostPort string = "127.0.0.1:10801"

var grpcClient nestGrpc.TriggerServiceClient

var rnd *rand.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
var rndMu sync.Mutex

type nest struct {
	ownerID  string
	deviceID string
	name     string
}

func main() {
	nests := make([]nest, 0, maxOwners*nestsPerOwner)
	for range maxOwners {
		ownerID := uuid.NewString()
		for j := range nestsPerOwner {
			nests = append(nests, nest{ownerID: ownerID, deviceID: uuid.NewString(), name: fmt.Sprintf("Shell %d", j+1)})
		}
	}
	fmt.Printf("generated %v nests for %v owners\n", len(nests), maxOwners)

	resp, err := http.Get(fmt.Sprintf("http://%s/healthz", httpHostPort))
	if err != nil {
		log.Fatal("Failed to connect to HTTP server:", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		log.Fatal("HTTP server not available")
	}

	fmt.Printf("http server verified\n")

	conn, err := grpc.NewClient(grpcHostPort, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		log.Fatal("Failed to connect to gRPC server:", err)
	}
	defer conn.Close()
	grpcClient = nestGrpc.NewTriggerServiceClient(conn)

	fmt.Printf("gRPC client ready\n")

	startTime := time.Now()
	wg := sync.WaitGroup{}
	for i := range nests {
		wg.Add(1)
		go func() {
			doActions(nests[i])
			wg.Done()
		}()
	}
	wg.Wait()
	usedTime := time.Since(startTime)

	fmt.Printf(
		"\n\rdid actions for %v nests: used time=%v seconds, throughput=%v action/second\n",
		len(nests), usedTime.Seconds(), float64(len(nests)*3)/usedTime.Seconds(),
	)
}

func flipCoin() bool {
	rndMu.Lock()
	defer rndMu.Unlock()
	return rnd.Int31n(100000)%2 == 0
}

func rndFloat64(min, max float64, decimal int) float64 {
	rndMu.Lock()
	val := min + rnd.Float64()*(max-min)
	rndMu.Unlock()
	multiplier := math.Pow10(decimal)
	return math.Round(val*multiplier) / multiplier
}

func rndSleep() {
	rndMu.Lock()
	d := time.Duration(100+rnd.Int31n(1000)) * time.Millisecond
	rndMu.Unlock()
	time.Sleep(d)
}

// readings straddle both ranges so every rule fires now and then
func randomReading(n nest) map[string]any {
	return map[string]any{
		"temperature": rndFloat64(26.0, 35.0, 1),
		"humidity":    rndFloat64(60.0, 80.0, 1),
		"name":        n.name,
	}
}

func doActions(n nest) {
	before := randomReading(n)
	for range 2 {
		after := randomReading(n)
		postUpdate(n, before, after)
		fmt.Printf("\rposted update for nest %v", n.deviceID)
		before = after
		rndSleep()
	}
	getAlerts(n)
}

func postUpdate(n nest, before, after map[string]any) {
	if flipCoin() {
		jsonData, _ := json.Marshal(map[string]any{"before": before, "after": after})
		resp, err := http.Post(
			fmt.Sprintf("http://%s/owners/%s/devices/%s/updates", httpHostPort, n.ownerID, n.deviceID),
			"application/json", bytes.NewBuffer(jsonData))
		if err != nil {
			fmt.Printf("\nerror: %v\n", err)
			return
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusTooManyRequests {
			fmt.Printf("\nresponse status code %v\n", resp.StatusCode)
		}
		return
	}

	req, err := structpb.NewStruct(map[string]any{
		"ownerId":  n.ownerID,
		"deviceId": n.deviceID,
		"before":   before,
		"after":    after,
	})
	if err != nil {
		panic(err)
	}
	resp, err := grpcClient.DeviceUpdated(context.Background(), req)
	if err != nil {
		fmt.Printf("\nerror: %v\n", err)
		return
	}
	if !resp.GetFields()["success"].GetBoolValue() {
		fmt.Printf("\nresponse success = false: %v\n", resp)
	}
}

func getAlerts(n nest) {
	if flipCoin() {
		resp, err := http.Get(fmt.Sprintf("http://%s/owners/%s/alerts", httpHostPort, n.ownerID))
		if err != nil {
			fmt.Printf("\nerror: %v\n", err)
			return
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusTooManyRequests {
			fmt.Printf("\nresponse status code %v\n", resp.StatusCode)
		}
		return
	}

	req, _ := structpb.NewStruct(map[string]any{"ownerId": n.ownerID})
	resp, err := grpcClient.GetAlerts(context.Background(), req)
	if err != nil {
		fmt.Printf("\nerror: %v\n", err)
		return
	}
	if !resp.GetFields()["success"].GetBoolValue() {
		fmt.Printf("\nresponse success = false: %v\n", resp)
	}
}

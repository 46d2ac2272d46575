package integration

import (
	"encoding/json"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestConcurrentRedemptions hammers a 5-use voucher with 50 simultaneous
// redemption attempts. The conditional decrement in the voucher store is the
// only thing standing between the operator and a drained wallet, so exactly
// 5 attempts may succeed and exactly 5 payments may go out.
func TestConcurrentRedemptions(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	terminalID, _, _ := app.createTerminal(t)

	const (
		uses     = 5
		attempts = 50
	)

	resp := app.adminRequest(t, http.MethodPost, "/api/v1/terminals/"+terminalID+"/vouchers", map[string]interface{}{
		"min_withdrawable": invoiceAmount,
		"max_withdrawable": invoiceAmount,
		"uses":             uses,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var mint struct {
		Secret string `json:"secret"`
	}
	decodeData(t, resp, &mint)

	actionURL := app.server.URL + "/lnurl/" + mint.Secret + "/action?pr=lnbc50u1fake"

	var (
		wg        sync.WaitGroup
		succeeded atomic.Int64
		exhausted atomic.Int64
	)
	start := make(chan struct{})

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start

			r, err := http.Get(actionURL)
			if err != nil {
				t.Error(err)
				return
			}
			defer r.Body.Close()

			var body map[string]string
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				t.Error(err)
				return
			}
			switch body["status"] {
			case "OK":
				succeeded.Add(1)
			case "ERROR":
				exhausted.Add(1)
			}
		}()
	}

	close(start)
	wg.Wait()

	assert.Equal(t, int64(uses), succeeded.Load(), "exactly the minted uses may redeem")
	assert.Equal(t, int64(attempts-uses), exhausted.Load())
	assert.Equal(t, uses, app.payments.paidCount(), "one payment per consumed use")
}

// TestConcurrentDeviceMints_NonceReplay fires the same signed mint query
// from many goroutines at once; the nonce store must let exactly one
// through.
func TestConcurrentDeviceMints_NonceReplay(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	_, apiKeyID, apiKeySecret := app.createTerminal(t)
	signedURL := app.server.URL + "/api/v1/lnurl?" + signedMintQuery(t, app, apiKeyID, apiKeySecret, "race-nonce", "1.00")

	const attempts = 20
	var (
		wg        sync.WaitGroup
		succeeded atomic.Int64
	)
	start := make(chan struct{})

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start

			r, err := http.Get(signedURL)
			if err != nil {
				t.Error(err)
				return
			}
			r.Body.Close()
			if r.StatusCode == http.StatusOK {
				succeeded.Add(1)
			}
		}()
	}

	close(start)
	wg.Wait()

	assert.Equal(t, int64(1), succeeded.Load(), "a nonce is good for one mint")
}

package solana

import (
	"context"
	"fmt"
	"time"
)

// confirmPollInterval is how often the waiter re-checks signature status.
const confirmPollInterval = 500 * time.Millisecond

// errBlockhashExpired reports that the chain moved past the blockhash's last
// valid height before the transaction confirmed.
var errBlockhashExpired = fmt.Errorf("solana: blockhash expired before confirmation")

// waitForConfirmation polls until the signature reaches confirmed commitment
// or the supplied blockhash expires. The blockhash must be fetched after
// submission; pairing confirmation with a pre-submission blockhash loses
// validity window to slow signing and slow faucets.
func waitForConfirmation(ctx context.Context, chain ChainClient, signature string, expiry Blockhash) error {
	ticker := time.NewTicker(confirmPollInterval)
	defer ticker.Stop()

	for {
		st, err := chain.SignatureStatus(ctx, signature)
		if err == nil {
			if st.Err != nil {
				return st.Err
			}
			if st.Confirmed {
				return nil
			}
		}
		// transient status errors fall through to the expiry check and retry

		height, herr := chain.BlockHeight(ctx)
		if herr == nil && height > expiry.LastValidBlockHeight {
			return fmt.Errorf("%w: signature %s", errBlockhashExpired, maskShort(signature))
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

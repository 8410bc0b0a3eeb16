package ledger

import (
	"context"
	"crypto/tls"
	"math/big"

	"github.com/fxamacker/cbor/v2"
	"github.com/pkg/errors"
	"github/chapool/sapphire-relay/internal/ledger/tx"
	"github/chapool/sapphire-relay/internal/wallet/address"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"
)

var ErrRuntimeCallFailed = errors.New("runtime transaction failed")

// NodeClient talks to an Oasis node's public gRPC API.
type NodeClient struct {
	conn grpc.ClientConnInterface
}

func NewNodeClient(conn grpc.ClientConnInterface) *NodeClient {
	return &NodeClient{conn: conn}
}

// DialNode opens a connection to endpoint (host:port). TLS is used unless plaintext is set.
func DialNode(endpoint string, plaintext bool, opts ...grpc.DialOption) (*grpc.ClientConn, error) {
	creds := credentials.NewTLS(&tls.Config{MinVersion: tls.VersionTLS12})
	if plaintext {
		creds = insecure.NewCredentials()
	}

	opts = append([]grpc.DialOption{
		grpc.WithTransportCredentials(creds),
		grpc.WithDefaultCallOptions(grpc.ForceCodec(Codec{})),
	}, opts...)

	conn, err := grpc.NewClient(endpoint, opts...)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to dial node %s", endpoint)
	}

	return conn, nil
}

func (c *NodeClient) invoke(ctx context.Context, method string, in, out any) error {
	if err := c.conn.Invoke(ctx, method, in, out, grpc.ForceCodec(Codec{})); err != nil {
		return errors.Wrap(err, method)
	}
	return nil
}

func (c *NodeClient) ChainContext(ctx context.Context) (string, error) {
	var chainContext string
	if err := c.invoke(ctx, methodGetChainContext, nil, &chainContext); err != nil {
		return "", err
	}
	return chainContext, nil
}

func (c *NodeClient) SignerNonce(ctx context.Context, account address.Address) (uint64, error) {
	var nonce uint64
	err := c.invoke(ctx, methodGetSignerNonce, &GetSignerNonceRequest{
		AccountAddress: account,
		Height:         HeightLatest,
	}, &nonce)
	return nonce, err
}

func (c *NodeClient) EstimateGas(ctx context.Context, signerPublicKey []byte, transaction *tx.Transaction) (uint64, error) {
	var gas uint64
	err := c.invoke(ctx, methodEstimateGas, &EstimateGasRequest{
		Signer:      signerPublicKey,
		Transaction: transaction,
	}, &gas)
	return gas, err
}

func (c *NodeClient) SubmitTx(ctx context.Context, signed *tx.SignedTransaction) error {
	var ignored cbor.RawMessage
	return c.invoke(ctx, methodSubmitTx, signed, &ignored)
}

func (c *NodeClient) Account(ctx context.Context, owner address.Address) (*Account, error) {
	var account Account
	if err := c.invoke(ctx, methodStakingAccount, &OwnerQuery{Height: HeightLatest, Owner: owner}, &account); err != nil {
		return nil, err
	}
	return &account, nil
}

func (c *NodeClient) Allowance(ctx context.Context, owner, beneficiary address.Address) (*big.Int, error) {
	var allowance tx.Quantity
	err := c.invoke(ctx, methodStakingAllowance, &AllowanceQuery{
		Height:      HeightLatest,
		Owner:       owner,
		Beneficiary: beneficiary,
	}, &allowance)
	if err != nil {
		return nil, err
	}
	return allowance.BigInt(), nil
}

// RuntimeQuery runs a read-only runtime method at the latest round and decodes its result into out.
func (c *NodeClient) RuntimeQuery(ctx context.Context, runtimeID []byte, method string, args, out any) error {
	rawArgs, err := tx.Marshal(args)
	if err != nil {
		return errors.Wrapf(err, "%s args", method)
	}

	var rsp RuntimeQueryResponse
	err = c.invoke(ctx, methodRuntimeQuery, &RuntimeQueryRequest{
		RuntimeID: runtimeID,
		Round:     RoundLatest,
		Method:    method,
		Args:      rawArgs,
	}, &rsp)
	if err != nil {
		return err
	}

	return errors.Wrapf(tx.Unmarshal(rsp.Data, out), "%s result", method)
}

func (c *NodeClient) RuntimeNonce(ctx context.Context, runtimeID []byte, account address.Address) (uint64, error) {
	var nonce uint64
	err := c.RuntimeQuery(ctx, runtimeID, queryAccountsNonce, &AddressQuery{Address: account}, &nonce)
	return nonce, err
}

func (c *NodeClient) RuntimeBalance(ctx context.Context, runtimeID []byte, account address.Address) (*big.Int, error) {
	var balance AccountBalance
	if err := c.RuntimeQuery(ctx, runtimeID, queryConsensusBalance, &AddressQuery{Address: account}, &balance); err != nil {
		return nil, err
	}
	return balance.Balance.BigInt(), nil
}

// RuntimeSubmitTx submits utx and waits for its result. A failed call is returned as
// ErrRuntimeCallFailed.
func (c *NodeClient) RuntimeSubmitTx(ctx context.Context, runtimeID []byte, utx *tx.UnverifiedTransaction) error {
	data, err := tx.Marshal(utx)
	if err != nil {
		return err
	}

	var raw []byte
	if err := c.invoke(ctx, methodRuntimeSubmitTx, &RuntimeSubmitTxRequest{RuntimeID: runtimeID, Data: data}, &raw); err != nil {
		return err
	}

	if len(raw) == 0 {
		return nil
	}

	var result CallResult
	if err := tx.Unmarshal(raw, &result); err != nil {
		return errors.Wrap(err, "runtime call result")
	}

	if result.Failed != nil {
		return errors.Wrapf(ErrRuntimeCallFailed, "module %s code %d: %s",
			result.Failed.Module, result.Failed.Code, result.Failed.Message)
	}

	return nil
}

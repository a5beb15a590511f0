package clientapi

import (
	"fmt"
	"strconv"
	"time"

	"github.com/pkg/errors"
)

type statusResponse struct {
	Result struct {
		NodeInfo struct {
			Network string `json:"network"`
		} `json:"node_info"`
		SyncInfo struct {
			LatestBlockHeight string `json:"latest_block_height"`
		} `json:"sync_info"`
	} `json:"result"`
}

type blockResponse struct {
	Result struct {
		Block struct {
			Header struct {
				Height string    `json:"height"`
				Time   time.Time `json:"time"`
			} `json:"header"`
			Data struct {
				Txs []string `json:"txs"`
			} `json:"data"`
		} `json:"block"`
	} `json:"result"`
}

// ChainID returns the network id the node reports.
func (c *APIClient) ChainID() (string, error) {
	var status statusResponse
	if err := c.getJSON(c.rpcEndpoint+"/status", &status); err != nil {
		return "", err
	}
	return status.Result.NodeInfo.Network, nil
}

// BlockHeightAndTime returns the latest block height together with its
// header timestamp.
func (c *APIClient) BlockHeightAndTime() (int64, time.Time, error) {
	var status statusResponse
	if err := c.getJSON(c.rpcEndpoint+"/status", &status); err != nil {
		return 0, time.Time{}, err
	}
	height, err := strconv.ParseInt(status.Result.SyncInfo.LatestBlockHeight, 10, 64)
	if err != nil {
		return 0, time.Time{}, errors.Wrapf(err, "unable to parse block height %q", status.Result.SyncInfo.LatestBlockHeight)
	}

	block, err := c.Block(height)
	if err != nil {
		return 0, time.Time{}, err
	}
	return height, block.Result.Block.Header.Time, nil
}

// Block fetches a single block by height.
func (c *APIClient) Block(height int64) (*blockResponse, error) {
	var block blockResponse
	url := fmt.Sprintf("%s/block?height=%d", c.rpcEndpoint, height)
	if err := c.getJSON(url, &block); err != nil {
		return nil, err
	}
	return &block, nil
}

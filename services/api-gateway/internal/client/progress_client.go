package client

import (
	"github.com/waste3d/learnplatform-api/services/progress-service/pkg/progresspb"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

type ProgressClient struct {
	conn   *grpc.ClientConn
	Client progresspb.ProgressServiceClient
}

func NewProgressClient(url string) (*ProgressClient, error) {
	cc, err := grpc.NewClient(url,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(grpc.CallContentSubtype(progresspb.Codec)),
	)
	if err != nil {
		return nil, err
	}
	return &ProgressClient{
		conn:   cc,
		Client: progresspb.NewProgressServiceClient(cc),
	}, nil
}

func (c *ProgressClient) Close() error {
	return c.conn.Close()
}

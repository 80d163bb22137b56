package cmd

import (
	"context"
	"runtime"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spigell/carmatch/internal/conversation"
	"github.com/spigell/carmatch/internal/profile"
	"github.com/spigell/carmatch/internal/ranking"
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Rank many independent requests from a file concurrently",
	Run: func(cmd *cobra.Command, _ []string) {
		batch(cmd)
	},
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().StringP("requests", "r", "", "json file with an array of ranking requests")
	batchCmd.Flags().IntP("workers", "w", runtime.NumCPU(), "number of requests ranked at once")
	batchCmd.MarkFlagRequired("requests")
}

// batchRequest is one entry of the requests file. Conversation turns are
// decoded leniently, so a malformed turn does not reject the request.
type batchRequest struct {
	ID           string            `json:"id"`
	Profile      profile.Lifestyle `json:"lifestyle_profile"`
	Budget       float64           `json:"budget"`
	Conversation []any             `json:"conversation"`
	TopN         int               `json:"top_n"`
}

type batchResult struct {
	ID              string                  `json:"id"`
	Recommendations []ranking.ScoredVehicle `json:"recommendations"`
	Error           string                  `json:"error,omitempty"`
}

func batch(cmd *cobra.Command) {
	ctx := cmd.Context()
	logger, config := setup()

	ranker, err := newRanker(loadCatalog(config, logger), config, logger)
	if err != nil {
		logger.Fatal("creating a ranker", zap.Error(err))
	}

	file, _ := cmd.Flags().GetString("requests")
	var requests []batchRequest
	if err := readJSON(file, &requests); err != nil {
		logger.Fatal("reading requests", zap.Error(err))
	}

	workers, _ := cmd.Flags().GetInt("workers")
	results, err := rankBatch(ctx, ranker, requests, workers, logger)
	if err != nil {
		logger.Fatal("batch ranking", zap.Error(err))
	}

	logger.Info("batch finished", zap.Int("requests", len(results)))

	if err := printJSON(cmd.OutOrStdout(), results); err != nil {
		logger.Fatal("writing results", zap.Error(err))
	}
}

// rankBatch ranks every request against the shared ranker. Results keep the
// order of requests; a failed request is reported in its result.
func rankBatch(ctx context.Context, ranker *ranking.Ranker, requests []batchRequest, workers int, logger *zap.Logger) ([]batchResult, error) {
	if workers <= 0 {
		workers = 1
	}

	results := make([]batchResult, len(requests))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, req := range requests {
		id := req.ID
		if id == "" {
			id = uuid.NewString()
		}

		g.Go(func() error {
			reqLogger := logger.With(zap.String("request_id", id))

			recommendations, err := ranker.Rank(gctx, ranking.Request{
				Profile: req.Profile,
				Budget:  req.Budget,
				History: conversation.DecodeHistory(req.Conversation),
				TopN:    req.TopN,
			})

			results[i] = batchResult{ID: id, Recommendations: recommendations}
			if err != nil {
				// Cancellation stops the whole batch.
				if gctx.Err() != nil {
					return gctx.Err()
				}
				reqLogger.Warn("ranking request failed", zap.Error(err))
				results[i].Error = err.Error()
				return nil
			}

			if results[i].Recommendations == nil {
				results[i].Recommendations = []ranking.ScoredVehicle{}
			}
			reqLogger.Debug("request ranked", zap.Int("count", len(recommendations)))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

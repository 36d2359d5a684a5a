package seed

import (
	"context"
	"log"

	"agora/internal/models"
)

// Options controls how much demo data Run creates.
type Options struct {
	Users             int
	Threads           int
	CommentsPerThread int
	RepliesPerComment int
	// LikeRate is the chance in [0,1) that a given user likes a given comment.
	LikeRate float64
}

// DefaultOptions is a small forum: enough data to browse, quick to create.
func DefaultOptions() Options {
	return Options{
		Users:             10,
		Threads:           5,
		CommentsPerThread: 4,
		RepliesPerComment: 2,
		LikeRate:          0.3,
	}
}

// Run populates the store with a mesh of users, threads, comments, replies,
// and likes.
func (f *Factory) Run(ctx context.Context, opts Options) error {
	users := make([]*models.User, 0, opts.Users)
	for i := 0; i < opts.Users; i++ {
		user, err := f.CreateUser(ctx)
		if err != nil {
			return err
		}
		users = append(users, user)
	}
	log.Printf("seeded %d users", len(users))

	for i := 0; i < opts.Threads; i++ {
		thread, err := f.CreateThread(ctx, f.pick(users))
		if err != nil {
			return err
		}

		for j := 0; j < opts.CommentsPerThread; j++ {
			comment, err := f.CreateComment(ctx, thread.ID, f.pick(users))
			if err != nil {
				return err
			}

			for k := 0; k < opts.RepliesPerComment; k++ {
				if _, err := f.CreateReply(ctx, comment.ID, f.pick(users)); err != nil {
					return err
				}
			}

			for _, user := range users {
				if f.rng.Float64() < opts.LikeRate {
					if err := f.LikeComment(ctx, comment.ID, user); err != nil {
						return err
					}
				}
			}
		}
	}
	log.Printf("seeded %d threads", opts.Threads)

	return nil
}

package lavactl

import (
	"context"
	"fmt"

	"github.com/openlava/openlava-go/pkg/client"
	"github.com/openlava/openlava-go/pkg/lsb"
)

// Queues prints the named queues, or all of them, one per line.
func (a *App) Queues(ctx context.Context, names []string) error {
	return a.withClient(ctx, func(c *client.Client) error {
		queues, err := c.Queues(ctx, names...)
		if err != nil {
			return err
		}
		w := a.tabWriter()
		defer w.Flush()
		fmt.Fprintln(w, "QUEUE_NAME\tPRIO\tSTATUS\tMAX\tNJOBS\tPEND\tRUN\tSUSP")
		for _, q := range queues {
			fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%d\t%d\t%d\t%d\n",
				q.Queue, q.Priority, q.Status, lsb.MaxJobsString(q.MaxJobs),
				q.NumJobs, q.NumPend, q.NumRun, q.NumSSusp+q.NumUSusp)
		}
		return nil
	})
}

// Hosts prints the named batch hosts, or all of them, one per line.
func (a *App) Hosts(ctx context.Context, names []string) error {
	return a.withClient(ctx, func(c *client.Client) error {
		hosts, err := c.Hosts(ctx, names...)
		if err != nil {
			return err
		}
		w := a.tabWriter()
		defer w.Flush()
		fmt.Fprintln(w, "HOST_NAME\tSTATUS\tMAX\tNJOBS\tRUN\tSSUSP\tUSUSP\tRSV")
		for _, h := range hosts {
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\t%d\t%d\n",
				h.Host, h.Status, lsb.MaxJobsString(h.MaxJobs),
				h.NumJobs, h.NumRun, h.NumSSusp, h.NumUSusp, h.NumReserve)
		}
		return nil
	})
}

// Users prints the named users, or every user the daemon knows of, one per line.
func (a *App) Users(ctx context.Context, names []string) error {
	return a.withClient(ctx, func(c *client.Client) error {
		users, err := c.Users(ctx, names...)
		if err != nil {
			return err
		}
		w := a.tabWriter()
		defer w.Flush()
		fmt.Fprintln(w, "USER\tMAX\tNJOBS\tPEND\tRUN\tSSUSP\tUSUSP\tRSV")
		for _, u := range users {
			fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\t%d\t%d\t%d\n",
				u.User, lsb.MaxJobsString(u.MaxJobs),
				u.NumJobs, u.NumPend, u.NumRun, u.NumSSusp, u.NumUSusp, u.NumReserve)
		}
		return nil
	})
}

// Cluster prints the cluster name and its master host.
func (a *App) Cluster(ctx context.Context) error {
	return a.withClient(ctx, func(c *client.Client) error {
		info, err := c.Cluster(ctx)
		if err != nil {
			return err
		}
		w := a.tabWriter()
		defer w.Flush()
		fmt.Fprintln(w, "CLUSTER_NAME\tMASTER_NAME")
		fmt.Fprintf(w, "%s\t%s\n", info.ClusterName, info.MasterName)
		return nil
	})
}

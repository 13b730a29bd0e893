// Package nodeglobe answers plain-English questions about a fleet of
// storage-provider nodes in process, without the HTTP server.
//
// A query such as "top 5 fastest active nodes in Europe" is parsed into a
// structured Spec, then applied to the node collection as a filter, a stable
// sort and a limit. The Result carries the matching nodes, a short
// description and the geographic focus point of the matches.
//
//	client, _ := nodeglobe.New(nodeglobe.WithDataset("nodes.yaml"))
//	res, _ := client.Query(ctx, "offline nodes in Germany")
//	fmt.Println(res.Description) // "2 offline in Germany nodes"
//
// Datasets are YAML, JSON or Parquet files, selected by extension.
package nodeglobe

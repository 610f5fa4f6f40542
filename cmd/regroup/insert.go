package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/solarlune/regroup"
	"github.com/solarlune/regroup/scene"
)

var (
	outPath     string
	nodeFlags   []string
	groupFlags  []string
	namingFlag  string
	styleFlag   string
	requestPath string
)

// loadScene loads the input file and picks the scene to work on.
func loadScene() (*scene.Library, *scene.Scene, error) {

	library, err := scene.LoadGLTFFile(inPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load %s: %w", inPath, err)
	}

	target := library.ExportedScene
	if sceneName != "" {
		target = library.FindScene(sceneName)
	}
	if target == nil {
		return nil, nil, fmt.Errorf("%s has no scene %q", inPath, sceneName)
	}

	logger.Debug("Scene loaded", zap.String("path", inPath), zap.String("scene", target.Name))

	return library, target, nil

}

// parseGroup parses a --group value, NAME[:object|:world].
func parseGroup(value string) regroup.GroupSpec {
	spec := regroup.GroupSpec{Name: value, ObjectPivot: true}
	if i := strings.LastIndex(value, ":"); i >= 0 {
		switch strings.ToLower(value[i+1:]) {
		case "object":
			spec.Name = value[:i]
		case "world":
			spec.Name = value[:i]
			spec.ObjectPivot = false
		}
	}
	return spec
}

// buildRequest reads the request file (if any) and adds the command line's nodes and groups to it.
func buildRequest(cmd *cobra.Command) (regroup.Request, error) {

	req := regroup.Request{}

	if requestPath != "" {
		data, err := os.ReadFile(requestPath)
		if err != nil {
			return req, fmt.Errorf("failed to read request: %w", err)
		}
		if err := yaml.Unmarshal(data, &req); err != nil {
			return req, fmt.Errorf("failed to parse request %s: %w", requestPath, err)
		}
	}

	for _, n := range nodeFlags {
		req.Nodes = append(req.Nodes, regroup.NodeRef(n))
	}

	for _, g := range groupFlags {
		req.Groups = append(req.Groups, parseGroup(g))
	}

	if requestPath == "" || cmd.Flags().Changed("naming") {
		if err := req.Naming.UnmarshalText([]byte(namingFlag)); err != nil {
			return req, err
		}
	}

	if requestPath == "" || cmd.Flags().Changed("style") {
		if err := req.Style.UnmarshalText([]byte(styleFlag)); err != nil {
			return req, err
		}
	}

	return req, nil

}

func runInsert(cmd *cobra.Command, args []string) error {

	req, err := buildRequest(cmd)
	if err != nil {
		return err
	}

	library, target, err := loadScene()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	watcher := scene.NewTreeWatcher(target.Root, func(node *scene.Node, added bool) {
		if added {
			fmt.Fprintf(out, "+ %s\n", node.Path())
		}
	})
	watcher.SetWatchFilter(func(node *scene.Node) bool { return node.Type().Is(scene.NodeTypeGroup) })

	inserter := regroup.NewInserter(scene.NewHost(target), regroup.NewZapFeedback(logger), regroup.WithLogger(logger))

	result, err := inserter.Insert(req)
	if err != nil {
		return err
	}

	watcher.Update()

	for _, renamed := range result.Renamed {
		fmt.Fprintf(out, "= %s\n", target.Node(string(renamed)).Path())
	}

	dest := outPath
	if dest == "" {
		dest = inPath
	}

	if err := library.SaveFile(dest); err != nil {
		return fmt.Errorf("failed to save %s: %w", dest, err)
	}

	logger.Info("Scene saved", zap.String("path", dest), zap.Int("renamed", len(result.Renamed)))

	if len(result.Failed) > 0 {
		return fmt.Errorf("group insertion failed for %d object(s)", len(result.Failed))
	}

	return nil

}

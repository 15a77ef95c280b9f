package site

import (
	"context"
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/kolah/scribe/internal/config"
	"github.com/kolah/scribe/internal/loader"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

const notifyAPI = `
openapi: 3.1.0
info:
  title: Notify API
  version: 1.0.0
paths:
  /emails:
    post:
      operationId: sendEmail
      summary: Send an email
      tags: [Email, Outbound]
      requestBody:
        required: true
        content:
          application/json:
            schema:
              $ref: '#/components/schemas/Email'
      responses:
        '202':
          description: Accepted
  /widgets/{id}:
    get:
      parameters:
        - name: id
          in: path
          required: true
          schema:
            type: string
      responses:
        '200':
          description: A widget
          content:
            application/json:
              schema:
                $ref: '#/components/schemas/Widget'
              example:
                zeta: 1
                alpha: 2
components:
  schemas:
    Base:
      type: object
      discriminator:
        propertyName: kind
        mapping:
          email: '#/components/schemas/Email'
      properties:
        kind:
          type: string
    Email:
      type: object
      required: [address]
      properties:
        address:
          type: string
        signers:
          type: array
          items:
            $ref: '#/components/schemas/Signer'
    Signer:
      type: object
      properties:
        name:
          type: string
    Widget:
      type: object
      properties:
        id:
          type: string
          readOnly: true
`

// newSite writes the document to root/public/openapi.yaml and returns a
// config pointing at it.
func newSite(t *testing.T, document string) *config.Config {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "public"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "public", "openapi.yaml"), []byte(document), 0644))

	cfg := config.Default()
	cfg.Root = root
	return &cfg
}

func build(t *testing.T, cfg *config.Config, opts ...Option) *Result {
	t.Helper()
	b, err := New(cfg, zerolog.Nop(), opts...)
	require.NoError(t, err)
	result, err := b.Build(context.Background())
	require.NoError(t, err)
	return result
}

func readTree(t *testing.T, root string) map[string]string {
	t.Helper()
	tree := make(map[string]string)
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		data, err := os.ReadFile(p)
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		tree[filepath.ToSlash(rel)] = string(data)
		return nil
	})
	require.NoError(t, err)
	return tree
}

func readList(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var list []string
	require.NoError(t, json.Unmarshal(data, &list))
	return list
}

func TestBuildWritesTree(t *testing.T) {
	cfg := newSite(t, notifyAPI)
	result := build(t, cfg)

	require.Equal(t, filepath.Join(cfg.Root, "openapi"), result.OutputDir)
	require.Equal(t, 2, result.Operations)
	require.Equal(t, 4, result.Models)
	require.Empty(t, result.Warnings)

	tree := readTree(t, result.OutputDir)
	for _, f := range []string{
		"index.md",
		"_meta.json",
		"email/sendEmail.md",
		"email/_meta.json",
		"outbound/sendEmail.md",
		"outbound/_meta.json",
		"default/GET__widgets__id_.md",
		"default/_meta.json",
		"models/Base.md",
		"models/Email.md",
		"models/Signer.md",
		"models/Widget.md",
		"models/_meta.json",
	} {
		require.Contains(t, tree, f)
	}
	require.Len(t, tree, 13)
	require.ElementsMatch(t, result.Files, mapKeys(tree))
}

func mapKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}

func TestBuildMultiTagOperation(t *testing.T) {
	cfg := newSite(t, notifyAPI)
	result := build(t, cfg)

	tree := readTree(t, result.OutputDir)
	require.Equal(t, tree["email/sendEmail.md"], tree["outbound/sendEmail.md"])
	require.Contains(t, tree["email/sendEmail.md"], "# Send an email")

	require.Equal(t, []string{"sendEmail"}, readList(t, filepath.Join(result.OutputDir, "email", "_meta.json")))
	require.Equal(t, []string{"sendEmail"}, readList(t, filepath.Join(result.OutputDir, "outbound", "_meta.json")))
}

func TestBuildSyntheticOperationID(t *testing.T) {
	cfg := newSite(t, notifyAPI)
	result := build(t, cfg)

	require.Equal(t, []string{"GET__widgets__id_"}, readList(t, filepath.Join(result.OutputDir, "default", "_meta.json")))

	page, err := os.ReadFile(filepath.Join(result.OutputDir, "default", "GET__widgets__id_.md"))
	require.NoError(t, err)
	require.Contains(t, string(page), "# GET /widgets/{id}")
	require.Contains(t, string(page), "```json\n{\n  \"zeta\": 1,\n  \"alpha\": 2\n}\n```")
	require.Contains(t, string(page), "| **id** | String | **Read-Only**. |")
}

func TestBuildManifests(t *testing.T) {
	cfg := newSite(t, notifyAPI)
	result := build(t, cfg)

	require.Equal(t, []string{"Base", "Email", "Signer", "Widget"}, readList(t, filepath.Join(result.OutputDir, "models", "_meta.json")))

	data, err := os.ReadFile(filepath.Join(result.OutputDir, "_meta.json"))
	require.NoError(t, err)

	var entries []json.RawMessage
	require.NoError(t, json.Unmarshal(data, &entries))
	require.Len(t, entries, 5)
	require.JSONEq(t, `"index"`, string(entries[0]))

	var dirs []DirEntry
	for _, raw := range entries[1:] {
		var d DirEntry
		require.NoError(t, json.Unmarshal(raw, &d))
		dirs = append(dirs, d)
	}
	require.Equal(t, []DirEntry{
		{Type: "dir", Name: "email", Label: "Email", Collapsible: true},
		{Type: "dir", Name: "outbound", Label: "Outbound", Collapsible: true},
		{Type: "dir", Name: "default", Label: "Default", Collapsible: true},
		{Type: "dir", Name: "models", Label: "Models", Collapsible: true, Collapsed: true},
	}, dirs)
}

func TestBuildDiscriminatorPages(t *testing.T) {
	cfg := newSite(t, notifyAPI)
	result := build(t, cfg)

	tree := readTree(t, result.OutputDir)
	require.Contains(t, tree["models/Email.md"], "## Parent Type\n\n- [Base](Base.md)")
	require.Contains(t, tree["models/Base.md"], "| `email` | [Email](Email.md) |")
	require.Contains(t, tree["models/Email.md"], `Array\<[Signer](../models/Signer.md)\>`)
}

func TestBuildIsIdempotent(t *testing.T) {
	cfg := newSite(t, notifyAPI)

	first := build(t, cfg)
	before := readTree(t, first.OutputDir)

	second := build(t, cfg)
	after := readTree(t, second.OutputDir)

	if diff := cmp.Diff(before, after); diff != "" {
		t.Fatalf("output tree changed between builds (-first +second):\n%s", diff)
	}
}

func TestBuildClean(t *testing.T) {
	tests := []struct {
		name       string
		clean      bool
		production bool
		wantStale  bool
	}{
		{"clean development build", true, false, false},
		{"production build never cleans", true, true, true},
		{"clean disabled", false, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := newSite(t, notifyAPI)
			cfg.Clean = tt.clean
			cfg.Production = tt.production

			stale := filepath.Join(cfg.OutputPath(), "stale", "old.md")
			require.NoError(t, os.MkdirAll(filepath.Dir(stale), 0755))
			require.NoError(t, os.WriteFile(stale, []byte("old"), 0644))

			build(t, cfg)

			_, err := os.Stat(stale)
			if tt.wantStale {
				require.NoError(t, err)
			} else {
				require.ErrorIs(t, err, os.ErrNotExist)
			}
		})
	}
}

func TestBuildDryRun(t *testing.T) {
	cfg := newSite(t, notifyAPI)
	result := build(t, cfg, WithDryRun(true))

	require.Contains(t, result.Files, "index.md")
	require.Contains(t, result.Files, "default/GET__widgets__id_.md")
	require.Equal(t, "_meta.json", result.Files[len(result.Files)-1])

	_, err := os.Stat(cfg.OutputPath())
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestBuildMissingDocument(t *testing.T) {
	cfg := config.Default()
	cfg.Root = t.TempDir()

	b, err := New(&cfg, zerolog.Nop())
	require.NoError(t, err)

	_, err = b.Build(context.Background())
	require.Error(t, err)
	require.ErrorIs(t, err, loader.ErrReadDocument)
}

func TestBuildUnparsableDocument(t *testing.T) {
	cfg := newSite(t, "swagger: '2.0'\ninfo:\n  title: old\n  version: '1'\npaths: {}\n")

	b, err := New(cfg, zerolog.Nop())
	require.NoError(t, err)

	_, err = b.Build(context.Background())
	require.ErrorIs(t, err, loader.ErrUnsupportedVersion)
}

func TestNewRequiresRoot(t *testing.T) {
	cfg := config.Default()
	_, err := New(&cfg, zerolog.Nop())
	require.ErrorIs(t, err, ErrMissingRoot)

	_, err = New(nil, zerolog.Nop())
	require.ErrorIs(t, err, ErrMissingRoot)
}

func TestBuildCustomTemplates(t *testing.T) {
	cfg := newSite(t, notifyAPI)
	tmplDir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(tmplDir, "markdown"), 0755))
	require.NoError(t, os.WriteFile(
		filepath.Join(tmplDir, "markdown", "index.tmpl"),
		[]byte("# {{ .Title }} reference\n"),
		0644,
	))
	cfg.Templates.Dir = tmplDir

	result := build(t, cfg)

	home, err := os.ReadFile(filepath.Join(result.OutputDir, "index.md"))
	require.NoError(t, err)
	require.Equal(t, "# Notify API reference\n", string(home))
}

const accountsAPI = `
openapi: 3.1.0
info:
  title: Accounts API
  version: 1.0.0
paths:
  /accounts:
    post:
      operationId: createAccount
      requestBody:
        content:
          application/json:
            schema:
              $ref: '#/components/schemas/Account'
      responses:
        '201':
          description: Created
          content:
            application/json:
              schema:
                $ref: '#/components/schemas/Account'
components:
  schemas:
    Account:
      type: object
      properties:
        name:
          type: string
        owner:
          $ref: '#/components/schemas/User'
          readOnly: true
          description: Set by the server.
        plan:
          $ref: '#/components/schemas/Plan'
    User:
      type: object
      properties:
        email:
          type: string
`

func TestBuildDanglingReference(t *testing.T) {
	cfg := newSite(t, accountsAPI)
	result := build(t, cfg)

	var missing []string
	for _, w := range result.Warnings {
		if strings.Contains(w, "Plan") {
			missing = append(missing, w)
		}
	}
	require.Equal(t, []string{"Reference Plan not found in components.schemas"}, missing)

	tree := readTree(t, result.OutputDir)
	require.Contains(t, tree["models/Account.md"], "| **plan** | Unknown |")
	require.Contains(t, tree["default/createAccount.md"], "| **plan** | Unknown |")
	require.NotContains(t, tree, "models/Plan.md")
}

func TestBuildReadOnlyReferenceProperty(t *testing.T) {
	cfg := newSite(t, accountsAPI)
	result := build(t, cfg)

	tree := readTree(t, result.OutputDir)
	model := tree["models/Account.md"]
	require.Contains(t, model, "| **owner** | [User](../models/User.md) | **Read-Only**.")
	require.Contains(t, model, "Set by the server.")

	// Hidden from the request body, listed in the response.
	page := tree["default/createAccount.md"]
	require.Equal(t, 1, strings.Count(page, "| **owner** |"))
	require.Equal(t, 2, strings.Count(page, "| **name** |"))
}

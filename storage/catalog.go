package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"devjournal/report"
)

// Kind selects one of the two catalogs.
type Kind string

const (
	KindProject Kind = "project"
	KindTag     Kind = "tag"

	catalogSchemaVersion = 1
)

var (
	ErrCatalogItemNotFound = errors.New("catalog item not found")
	ErrCatalogItemExists   = errors.New("catalog item already exists")

	colorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)
)

// CatalogItem is a known project or tag with its display color.
type CatalogItem struct {
	ID          int64
	Kind        Kind
	Name        string
	Description string
	Color       string
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Catalog stores projects and tags in SQLite.
type Catalog struct {
	db *sql.DB
}

func ParseKind(value string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(value))) {
	case KindProject:
		return KindProject, nil
	case KindTag:
		return KindTag, nil
	default:
		return "", fmt.Errorf("unsupported catalog kind %q (valid: project, tag)", value)
	}
}

func (k Kind) table() string {
	if k == KindTag {
		return "tags"
	}
	return "projects"
}

func (k Kind) defaultColor() string {
	if k == KindTag {
		return report.DefaultTagColor
	}
	return report.DefaultProjectColor
}

func OpenCatalog(path string) (*Catalog, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	catalog := &Catalog{db: db}
	if err := catalog.ensureSchema(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return catalog, nil
}

func (c *Catalog) Close() error {
	return c.db.Close()
}

func (c *Catalog) ensureSchema() error {
	const schema = `
CREATE TABLE IF NOT EXISTS projects (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL UNIQUE,
	description TEXT NOT NULL DEFAULT '',
	color TEXT NOT NULL DEFAULT '#007bff',
	active INTEGER NOT NULL DEFAULT 1,
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS tags (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL UNIQUE,
	description TEXT NOT NULL DEFAULT '',
	color TEXT NOT NULL DEFAULT '#6c757d',
	active INTEGER NOT NULL DEFAULT 1,
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL
);
`
	if _, err := c.db.Exec(schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}

	var version int
	if err := c.db.QueryRow(`PRAGMA user_version;`).Scan(&version); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if version >= catalogSchemaVersion {
		return nil
	}

	if err := c.seedDefaults(); err != nil {
		return err
	}
	if _, err := c.db.Exec(fmt.Sprintf(`PRAGMA user_version = %d;`, catalogSchemaVersion)); err != nil {
		return fmt.Errorf("write schema version: %w", err)
	}
	return nil
}

func (c *Catalog) seedDefaults() error {
	tx, err := c.db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	for _, seed := range defaultCatalogItems {
		stmt := fmt.Sprintf(
			`INSERT OR IGNORE INTO %s (name, description, color, active, created_at, updated_at) VALUES (?, ?, ?, 1, ?, ?);`,
			seed.Kind.table(),
		)
		if _, err := tx.Exec(stmt, seed.Name, seed.Description, seed.Color, now, now); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("seed %s %q: %w", seed.Kind, seed.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// List returns catalog items ordered by name. Inactive items are skipped
// unless includeInactive is set.
func (c *Catalog) List(kind Kind, includeInactive bool) ([]CatalogItem, error) {
	query := fmt.Sprintf(`
SELECT id, name, description, color, active, created_at, updated_at
FROM %s`, kind.table())
	if !includeInactive {
		query += "\nWHERE active = 1"
	}
	query += "\nORDER BY name COLLATE NOCASE, id;"

	rows, err := c.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("query %s catalog: %w", kind, err)
	}
	defer rows.Close()

	items := make([]CatalogItem, 0, 32)
	for rows.Next() {
		item, err := scanCatalogItem(rows, kind)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s catalog: %w", kind, err)
	}
	return items, nil
}

// Get returns one item by name.
func (c *Catalog) Get(kind Kind, name string) (CatalogItem, bool, error) {
	query := fmt.Sprintf(`
SELECT id, name, description, color, active, created_at, updated_at
FROM %s
WHERE name = ?;`, kind.table())

	item, err := scanCatalogItem(c.db.QueryRow(query, strings.TrimSpace(name)), kind)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return CatalogItem{}, false, nil
		}
		return CatalogItem{}, false, err
	}
	return item, true, nil
}

// Create inserts a new active item. An empty color falls back to the kind default.
func (c *Catalog) Create(item CatalogItem) (CatalogItem, error) {
	item, err := normalizeCatalogItem(item)
	if err != nil {
		return CatalogItem{}, err
	}

	now := time.Now().UTC()
	stmt := fmt.Sprintf(
		`INSERT OR IGNORE INTO %s (name, description, color, active, created_at, updated_at) VALUES (?, ?, ?, 1, ?, ?);`,
		item.Kind.table(),
	)
	res, err := c.db.Exec(stmt, item.Name, item.Description, item.Color, now.Format(time.RFC3339), now.Format(time.RFC3339))
	if err != nil {
		return CatalogItem{}, fmt.Errorf("insert %s: %w", item.Kind, err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return CatalogItem{}, fmt.Errorf("read inserted row count: %w", err)
	}
	if rows == 0 {
		return CatalogItem{}, fmt.Errorf("%w: %s %q", ErrCatalogItemExists, item.Kind, item.Name)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return CatalogItem{}, fmt.Errorf("read inserted row id: %w", err)
	}
	item.ID = id
	item.Active = true
	item.CreatedAt = now.Truncate(time.Second)
	item.UpdatedAt = item.CreatedAt
	return item, nil
}

// Update replaces description and color of the item called name.
func (c *Catalog) Update(kind Kind, name string, description, color string) error {
	item, err := normalizeCatalogItem(CatalogItem{Kind: kind, Name: name, Description: description, Color: color})
	if err != nil {
		return err
	}

	stmt := fmt.Sprintf(`UPDATE %s SET description = ?, color = ?, updated_at = ? WHERE name = ?;`, kind.table())
	res, err := c.db.Exec(stmt, item.Description, item.Color, time.Now().UTC().Format(time.RFC3339), item.Name)
	if err != nil {
		return fmt.Errorf("update %s %q: %w", kind, item.Name, err)
	}
	return requireAffected(res, kind, item.Name)
}

// Toggle flips the active flag and returns the new state.
func (c *Catalog) Toggle(kind Kind, name string) (bool, error) {
	name = strings.TrimSpace(name)
	stmt := fmt.Sprintf(
		`UPDATE %s SET active = CASE active WHEN 1 THEN 0 ELSE 1 END, updated_at = ? WHERE name = ?;`,
		kind.table(),
	)
	res, err := c.db.Exec(stmt, time.Now().UTC().Format(time.RFC3339), name)
	if err != nil {
		return false, fmt.Errorf("toggle %s %q: %w", kind, name, err)
	}
	if err := requireAffected(res, kind, name); err != nil {
		return false, err
	}

	item, ok, err := c.Get(kind, name)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, fmt.Errorf("%w: %s %q", ErrCatalogItemNotFound, kind, name)
	}
	return item.Active, nil
}

// Delete removes the item called name. The bool is false when nothing matched.
func (c *Catalog) Delete(kind Kind, name string) (bool, error) {
	stmt := fmt.Sprintf(`DELETE FROM %s WHERE name = ?;`, kind.table())
	res, err := c.db.Exec(stmt, strings.TrimSpace(name))
	if err != nil {
		return false, fmt.Errorf("delete %s %q: %w", kind, name, err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("read deleted row count: %w", err)
	}
	return rows > 0, nil
}

// Colors maps every known name of kind, active or not, to its color.
func (c *Catalog) Colors(kind Kind) (map[string]string, error) {
	items, err := c.List(kind, true)
	if err != nil {
		return nil, err
	}
	colors := make(map[string]string, len(items))
	for _, item := range items {
		colors[item.Name] = item.Color
	}
	return colors, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCatalogItem(row rowScanner, kind Kind) (CatalogItem, error) {
	var (
		item       CatalogItem
		active     int
		createdRaw string
		updatedRaw string
	)
	if err := row.Scan(&item.ID, &item.Name, &item.Description, &item.Color, &active, &createdRaw, &updatedRaw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return CatalogItem{}, err
		}
		return CatalogItem{}, fmt.Errorf("scan %s: %w", kind, err)
	}
	item.Kind = kind
	item.Active = active == 1

	var err error
	item.CreatedAt, err = time.Parse(time.RFC3339, createdRaw)
	if err != nil {
		return CatalogItem{}, fmt.Errorf("parse created_at %q: %w", createdRaw, err)
	}
	item.UpdatedAt, err = time.Parse(time.RFC3339, updatedRaw)
	if err != nil {
		return CatalogItem{}, fmt.Errorf("parse updated_at %q: %w", updatedRaw, err)
	}
	return item, nil
}

func normalizeCatalogItem(item CatalogItem) (CatalogItem, error) {
	if item.Kind != KindProject && item.Kind != KindTag {
		return CatalogItem{}, fmt.Errorf("unsupported catalog kind %q", item.Kind)
	}
	item.Name = strings.TrimSpace(item.Name)
	if item.Kind == KindTag {
		item.Name = strings.TrimPrefix(item.Name, "#")
	}
	if item.Name == "" {
		return CatalogItem{}, fmt.Errorf("%s name is required", item.Kind)
	}
	if item.Kind == KindTag && strings.ContainsAny(item.Name, " \t\n") {
		return CatalogItem{}, fmt.Errorf("tag name %q must not contain whitespace", item.Name)
	}
	item.Description = strings.TrimSpace(item.Description)
	item.Color = strings.TrimSpace(item.Color)
	if item.Color == "" {
		item.Color = item.Kind.defaultColor()
	}
	if !colorPattern.MatchString(item.Color) {
		return CatalogItem{}, fmt.Errorf("color %q must look like #rrggbb", item.Color)
	}
	return item, nil
}

func requireAffected(res sql.Result, kind Kind, name string) error {
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("read updated row count: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s %q", ErrCatalogItemNotFound, kind, name)
	}
	return nil
}

var defaultCatalogItems = []CatalogItem{
	{Kind: KindProject, Name: "Mandate", Description: "Mandate management", Color: "#28a745"},
	{Kind: KindProject, Name: "Instance", Description: "Meeting management", Color: "#007bff"},
	{Kind: KindProject, Name: "Claims", Description: "Claims handling", Color: "#ffc107"},
	{Kind: KindProject, Name: "Negociation", Description: "Negotiation module", Color: "#17a2b8"},
	{Kind: KindProject, Name: "Socle", Description: "Technical foundation", Color: "#6c757d"},
	{Kind: KindProject, Name: "Formation", Description: "Training and tech watch", Color: "#e83e8c"},
	{Kind: KindProject, Name: "Maintenance", Description: "Maintenance and fixes", Color: "#fd7e14"},
	{Kind: KindTag, Name: "bug", Description: "Bug fixing", Color: "#dc3545"},
	{Kind: KindTag, Name: "feature", Description: "New feature", Color: "#28a745"},
	{Kind: KindTag, Name: "refactor", Description: "Code refactoring", Color: "#6f42c1"},
	{Kind: KindTag, Name: "test", Description: "Tests and QA", Color: "#20c997"},
	{Kind: KindTag, Name: "documentation", Description: "Documentation", Color: "#0dcaf0"},
	{Kind: KindTag, Name: "release", Description: "Release preparation", Color: "#fd7e14"},
	{Kind: KindTag, Name: "meeting", Description: "Meetings and discussions", Color: "#6c757d"},
	{Kind: KindTag, Name: "review", Description: "Code review", Color: "#e83e8c"},
	{Kind: KindTag, Name: "performance", Description: "Performance work", Color: "#ffc107"},
	{Kind: KindTag, Name: "security", Description: "Security", Color: "#dc3545"},
	{Kind: KindTag, Name: "deployment", Description: "Deployment", Color: "#198754"},
	{Kind: KindTag, Name: "research", Description: "Research and proofs of concept", Color: "#0d6efd"},
	{Kind: KindTag, Name: "maintenance", Description: "Technical maintenance", Color: "#fd7e14"},
	{Kind: KindTag, Name: "support", Description: "User support", Color: "#6610f2"},
	{Kind: KindTag, Name: "planning", Description: "Planning and estimation", Color: "#6f42c1"},
}

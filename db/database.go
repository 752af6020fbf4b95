package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/camreview/threads-affiliate/db/models"
	"github.com/camreview/threads-affiliate/logger"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	_ "modernc.org/sqlite"
)

// Database represents the database connection
type Database struct {
	DB *gorm.DB
}

// NewDatabase opens (or creates) the post store at
// <saveLocation>/threads_posts.db and brings the schema up to date.
func NewDatabase(saveLocation string) (*Database, error) {
	if err := os.MkdirAll(saveLocation, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	dbPath := filepath.Join(saveLocation, "threads_posts.db")

	// Databases written by the old python tool use an is_posted column and
	// hand-rolled tables; detect that before GORM touches the file.
	needsMigration, err := checkLegacySchema(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to check database schema: %w", err)
	}

	logConfig := gormlogger.Config{
		LogLevel: gormlogger.Warn, // Log only warnings and errors
		Colorful: true,
	}

	db, err := gorm.Open(sqlite.New(sqlite.Config{DriverName: "sqlite", DSN: dbPath}), &gorm.Config{
		Logger: gormlogger.New(
			logger.Logger,
			logConfig,
		),
		TranslateError: true,
	})

	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Cascade deletes from posts to their attachment tables
	if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if needsMigration {
		if err := migrateLegacySchema(db); err != nil {
			return nil, fmt.Errorf("failed to migrate legacy schema: %w", err)
		}
	} else {
		if err := db.AutoMigrate(
			&models.Post{},
			&models.PostImage{},
			&models.PostVideo{},
			&models.ShopeeLink{},
		); err != nil {
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	return &Database{DB: db}, nil
}

// checkLegacySchema reports whether dbPath holds the old hand-written
// schema (posts table with an is_posted flag instead of published).
func checkLegacySchema(dbPath string) (bool, error) {
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		return false, nil
	}

	sqlDB, err := sql.Open("sqlite", dbPath)
	if err != nil {
		// If the database can't even be opened, let GORM surface the error
		return false, nil
	}
	defer sqlDB.Close()

	var count int
	err = sqlDB.QueryRow(`SELECT COUNT(*) FROM sqlite_master
                         WHERE type='table' AND name='posts'
                         AND sql LIKE '%is_posted%'`).Scan(&count)
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// migrateLegacySchema moves rows from the old hand-written tables into the
// GORM schema, preserving ids so the post_id references stay valid.
func migrateLegacySchema(db *gorm.DB) error {
	legacyTables := []string{"posts", "post_images", "post_videos", "shopee_links"}
	for _, table := range legacyTables {
		if err := db.Exec(fmt.Sprintf("ALTER TABLE %s RENAME TO %s_legacy", table, table)).Error; err != nil {
			return err
		}
	}

	if err := db.AutoMigrate(
		&models.Post{},
		&models.PostImage{},
		&models.PostVideo{},
		&models.ShopeeLink{},
	); err != nil {
		return err
	}

	copies := []string{
		`INSERT INTO posts (id, content_hash, content, origin_url, created_at, published, published_at)
         SELECT id, content_hash, content, COALESCE(original_url, ''), created_at, is_posted, posted_at
         FROM posts_legacy`,
		`INSERT INTO post_images (id, post_id, image_url, local_path)
         SELECT id, post_id, image_url, COALESCE(local_path, '') FROM post_images_legacy`,
		`INSERT INTO post_videos (id, post_id, video_url, local_path)
         SELECT id, post_id, video_url, COALESCE(local_path, '') FROM post_videos_legacy`,
		`INSERT INTO shopee_links (id, post_id, original_link, affiliate_link)
         SELECT id, post_id, original_link, COALESCE(affiliate_link, '') FROM shopee_links_legacy`,
	}
	for _, stmt := range copies {
		if err := db.Exec(stmt).Error; err != nil {
			return err
		}
	}

	// Children first so the posts drop never trips their foreign keys
	for i := len(legacyTables) - 1; i >= 0; i-- {
		if err := db.Exec(fmt.Sprintf("DROP TABLE %s_legacy", legacyTables[i])).Error; err != nil {
			return err
		}
	}

	logger.Logger.Printf("Migrated legacy database schema")
	return nil
}

// Close closes the database connection
func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

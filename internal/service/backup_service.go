package service

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"lingodrill/internal/database"
)

const backupVersion = "1"

// BackupData is the on-disk backup envelope
type BackupData struct {
	Version      string           `json:"version"`
	ExportedAt   time.Time        `json:"exportedAt"`
	DatabaseType string           `json:"databaseType"`
	Documents    []DocumentBackup `json:"documents"`
}

// DocumentBackup is one documents-table row with its full address
type DocumentBackup struct {
	Namespace  string          `json:"namespace"`
	Identity   string          `json:"identity"`
	Collection string          `json:"collection"`
	DocID      string          `json:"docId"`
	Body       json.RawMessage `json:"body"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

// BackupService exports and imports learner documents as JSON files.
// Sessions are not exported; they expire on their own.
type BackupService struct {
	db *database.DB
}

// NewBackupService creates a new backup service
func NewBackupService(db *database.DB) *BackupService {
	return &BackupService{db: db}
}

// Export writes documents to a JSON file. When namespace is non-empty
// only that namespace is exported.
func (s *BackupService) Export(outputPath, namespace string) error {
	backup := BackupData{
		Version:      backupVersion,
		ExportedAt:   time.Now().UTC(),
		DatabaseType: s.db.Dialect.DriverName(),
	}

	query := "SELECT namespace, identity, collection, doc_id, body, updated_at FROM documents"
	var args []interface{}
	if namespace != "" {
		query += " WHERE namespace = ?"
		args = append(args, namespace)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return fmt.Errorf("failed to read documents: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var doc DocumentBackup
		var body string
		if err := rows.Scan(&doc.Namespace, &doc.Identity, &doc.Collection, &doc.DocID, &body, &doc.UpdatedAt); err != nil {
			return fmt.Errorf("failed to scan document: %w", err)
		}
		doc.Body = json.RawMessage(body)
		backup.Documents = append(backup.Documents, doc)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate documents: %w", err)
	}

	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create backup file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(backup); err != nil {
		return fmt.Errorf("failed to encode backup: %w", err)
	}

	log.Printf("Exported %d documents", len(backup.Documents))
	return nil
}

// Import loads documents from a JSON backup file, upserting over any
// existing row at the same address
func (s *BackupService) Import(inputPath string) error {
	file, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("failed to open backup file: %w", err)
	}
	defer file.Close()

	var backup BackupData
	if err := json.NewDecoder(file).Decode(&backup); err != nil {
		return fmt.Errorf("failed to decode backup: %w", err)
	}
	if backup.Version != backupVersion {
		return fmt.Errorf("unsupported backup version %q", backup.Version)
	}

	upsert := s.db.Dialect.UpsertDocumentQuery()
	imported := 0
	for _, doc := range backup.Documents {
		if !json.Valid(doc.Body) {
			log.Printf("Warning: skipping %s/%s/%s/%s: body is not valid JSON", doc.Namespace, doc.Identity, doc.Collection, doc.DocID)
			continue
		}
		if _, err := s.db.Exec(upsert, doc.Namespace, doc.Identity, doc.Collection, doc.DocID, string(doc.Body)); err != nil {
			return fmt.Errorf("failed to import document %s/%s/%s/%s: %w", doc.Namespace, doc.Identity, doc.Collection, doc.DocID, err)
		}
		imported++
	}

	log.Printf("Imported %d documents", imported)
	return nil
}

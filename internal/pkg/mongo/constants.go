package mongo

import "github.com/airenas/interviewcoach/internal/pkg/persistence"

const (
	defaultURL      = "mongodb://localhost:27017"
	defaultDatabase = "web_app_db"
	recordsTable    = "records"
)

var indexData = []IndexData{
	newIndexData(recordsTable, []string{persistence.FieldStatus, persistence.FieldCreatedAt}, false)}

package backup

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	appconfig "saraf-backend/internal/config"
	"saraf-backend/internal/models"
	"saraf-backend/internal/services"
	"saraf-backend/internal/timeutil"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// snapshot is the JSON document written to the bucket: every record a
// user owns plus the balance totals at export time.
type snapshot struct {
	UserID       int                     `json:"user_id"`
	ExportedAt   time.Time               `json:"exported_at"`
	CashBalance  float64                 `json:"cash_balance"`
	BankBalance  float64                 `json:"bank_balance"`
	Bills        []*models.Bill          `json:"bills"`
	Orders       []*models.CustomerOrder `json:"customer_orders"`
	Transactions []*models.Transaction   `json:"transactions"`
}

// BackupInfo describes one stored snapshot.
type BackupInfo struct {
	Key          string `json:"key"`
	Size         int64  `json:"size"`
	LastModified string `json:"lastModified"`
}

// Exporter writes per-user JSON snapshots to an S3-compatible bucket
// (Cloudflare R2 in production).
type Exporter struct {
	cfg          appconfig.Config
	bills        services.BillStore
	orders       services.OrderStore
	transactions services.TransactionStore
	ledger       services.LedgerStore
}

func NewExporter(cfg *appconfig.Config, bills services.BillStore, orders services.OrderStore, transactions services.TransactionStore, ledger services.LedgerStore) *Exporter {
	return &Exporter{
		cfg:          *cfg,
		bills:        bills,
		orders:       orders,
		transactions: transactions,
		ledger:       ledger,
	}
}

func (e *Exporter) client(ctx context.Context) (*s3.Client, error) {
	if e.cfg.Backup.Bucket == "" || e.cfg.Backup.AccessKey == "" {
		return nil, fmt.Errorf("backup bucket not configured")
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			e.cfg.Backup.AccessKey,
			e.cfg.Backup.SecretKey,
			"",
		)),
		awsconfig.WithRegion(e.cfg.Backup.Region),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to configure S3 client: %w", err)
	}

	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		if e.cfg.Backup.Endpoint != "" {
			o.BaseEndpoint = aws.String(e.cfg.Backup.Endpoint)
		}
	}), nil
}

// Export gathers everything the user owns and uploads one JSON object.
// Returns the object key.
func (e *Exporter) Export(ctx context.Context, userID int) (string, error) {
	client, err := e.client(ctx)
	if err != nil {
		return "", err
	}

	bills, err := e.bills.ListForUser(ctx, userID)
	if err != nil {
		return "", err
	}
	orders, err := e.orders.ListForUser(ctx, userID)
	if err != nil {
		return "", err
	}
	transactions, err := e.transactions.ListForUser(ctx, userID)
	if err != nil {
		return "", err
	}
	balances, err := e.ledger.Balances(ctx, userID)
	if err != nil {
		return "", err
	}

	doc := snapshot{
		UserID:       userID,
		ExportedAt:   timeutil.Now(),
		CashBalance:  balances.Cash,
		BankBalance:  balances.Bank,
		Bills:        bills,
		Orders:       orders,
		Transactions: transactions,
	}

	body, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", err
	}

	key := fmt.Sprintf("users/%d/%s.json", userID, timeutil.Now().Format("2006-01-02T15-04-05"))
	_, err = client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(e.cfg.Backup.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload backup: %w", err)
	}

	return key, nil
}

// List returns the stored snapshots for a user, newest last.
func (e *Exporter) List(ctx context.Context, userID int) ([]BackupInfo, error) {
	client, err := e.client(ctx)
	if err != nil {
		return nil, err
	}

	result, err := client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket: aws.String(e.cfg.Backup.Bucket),
		Prefix: aws.String(fmt.Sprintf("users/%d/", userID)),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list backups: %w", err)
	}

	backups := make([]BackupInfo, 0, len(result.Contents))
	for _, obj := range result.Contents {
		info := BackupInfo{Key: aws.ToString(obj.Key)}
		if obj.Size != nil {
			info.Size = *obj.Size
		}
		if obj.LastModified != nil {
			info.LastModified = obj.LastModified.Format(time.RFC3339)
		}
		backups = append(backups, info)
	}
	return backups, nil
}

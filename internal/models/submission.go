package models

import "time"

type SubmissionStatus string

const (
	StatusSubmitted       SubmissionStatus = "submitted"
	StatusApproved        SubmissionStatus = "approved"
	StatusRejected        SubmissionStatus = "rejected"
	StatusPendingRevision SubmissionStatus = "pending_revision"
	StatusRevised         SubmissionStatus = "revised"
)

type ReviewAction string

const (
	ReviewApprove ReviewAction = "approve"
	ReviewReject  ReviewAction = "reject"
	ReviewRevise  ReviewAction = "revise"
)

// Submission gişe (desk) veya bayi dolum gün sonu kaydı. İki tür aynı tabloda
// tutulur; RecordType oluşturma anında set edilen açık ayraçtır.
//
// Ürünler, kategori kredi tutarları, kupür sayımları ve bankaya gönderilen
// nakit bloğu ham girdi olarak jsonb saklanır; toplamlar bloğu kuruş cinsinden
// ayrı kolonlardadır ki rapor sorguları jsonb açmadan çalışabilsin.
// Toplamlar türetilmiş alanlardır, yalnızca sunucu tarafında hesaplanıp yazılır.
type Submission struct {
	ID         uint      `gorm:"primaryKey"`
	RecordType string    `gorm:"size:20;index;not null"` // desk | bayi-dolum
	Date       time.Time `gorm:"index;not null"`         // gün bazlı

	// Ham girdi blokları (jsonb)
	Products            string `gorm:"type:jsonb;not null"` // ürün -> adet
	CategoryCreditCards string `gorm:"type:jsonb;not null"` // kategori -> KK tutarı (kuruş)
	Banknotes           string `gorm:"type:jsonb"`          // kategori -> kupür sayımı
	// BankSentCash "bankaya gönder" anındaki kupür toplamının anlık görüntüsüdür;
	// sonradan kupürler düzenlenirse kendiliğinden güncellenmez.
	BankSentCash string `gorm:"type:jsonb"` // kategori -> tutar (kuruş)

	// Ödemeler bloğu (kuruş)
	GunbasiNakit        int64 `gorm:"not null"`
	BankayaGonderilen   int64 `gorm:"not null"`
	ErtesiGuneBirakilan int64 `gorm:"not null"`

	// Toplamlar bloğu (kuruş, hesaplanmış)
	TotalSales      int64 `gorm:"not null"`
	TotalCreditCard int64 `gorm:"not null"`
	TotalCash       int64 `gorm:"not null"`
	CashInRegister  int64 `gorm:"not null"`
	Difference      int64 `gorm:"not null"`

	SubmittedBy      uint   `gorm:"index;not null"`
	SubmittedByEmail string `gorm:"size:100;not null"`
	SubmittedAt      time.Time

	Status SubmissionStatus `gorm:"size:20;index;not null"`

	// İnceleme meta verisi; kayıt revize döngüsüne girdiğinde korunur
	ReviewedBy      *uint
	ReviewedByEmail string `gorm:"size:100"`
	ReviewedByRole  string `gorm:"size:20"`
	ReviewAction    string `gorm:"size:20"`
	ReviewNotes     string `gorm:"size:500"`
	ReviewedAt      *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

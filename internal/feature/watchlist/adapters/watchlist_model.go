package adapters

import "time"

// WatchlistModel はウォッチリストの行を表すgormモデルです。
// Symbol にはインデックスを張りますが一意制約はなく、読み込み時に重複を許容します。
type WatchlistModel struct {
	ID        uint      `gorm:"primaryKey"`
	Symbol    string    `gorm:"size:32;not null;index"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// TableName はテーブル名を指定します。
func (WatchlistModel) TableName() string { return "watchlist" }

package storage

const schema = `
-- The 'decks' table holds whole serialized decks, one row per storage slot.
-- The app uses a single fixed slot; the deck is always written as a whole.
CREATE TABLE IF NOT EXISTS decks (
    slot TEXT PRIMARY KEY,
    payload TEXT NOT NULL,
    updated_at DATETIME NOT NULL
);
`

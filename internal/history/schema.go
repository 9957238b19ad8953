package history

const schema = `
CREATE TABLE IF NOT EXISTS invocations (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,
    op          TEXT NOT NULL,
    source      TEXT NOT NULL,
    target      TEXT,
    argv        TEXT NOT NULL,
    status      TEXT NOT NULL,
    exit_code   INTEGER NOT NULL,
    detail      TEXT,
    timestamp   INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS invocations_timestamp ON invocations (timestamp);
`

package repository

const schemaSQL = `
CREATE SCHEMA IF NOT EXISTS advisor;

CREATE TABLE IF NOT EXISTS advisor.users (
	id            BIGSERIAL PRIMARY KEY,
	username      TEXT NOT NULL,
	email         TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS advisor.profiles (
	user_id           BIGINT PRIMARY KEY REFERENCES advisor.users(id) ON DELETE CASCADE,
	display_name      TEXT NOT NULL DEFAULT '',
	subscription_tier TEXT NOT NULL DEFAULT 'free',
	savings_threshold INTEGER NOT NULL DEFAULT 20,
	expense_threshold INTEGER NOT NULL DEFAULT 80,
	updated_at        TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS advisor.budgets (
	id               BIGSERIAL PRIMARY KEY,
	user_id          BIGINT NOT NULL REFERENCES advisor.users(id) ON DELETE CASCADE,
	monthly_income   NUMERIC(14,2) NOT NULL,
	monthly_expenses NUMERIC(14,2) NOT NULL,
	savings          NUMERIC(14,2) NOT NULL,
	emergency_fund   NUMERIC(14,2) NOT NULL,
	is_active        BOOLEAN NOT NULL DEFAULT TRUE,
	created_at       TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS budgets_user_active_idx ON advisor.budgets (user_id, is_active, created_at DESC);

CREATE TABLE IF NOT EXISTS advisor.decisions (
	id         BIGSERIAL PRIMARY KEY,
	user_id    BIGINT NOT NULL REFERENCES advisor.users(id) ON DELETE CASCADE,
	category   TEXT NOT NULL,
	input      JSONB NOT NULL,
	result     JSONB NOT NULL,
	tier       TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS decisions_user_created_idx ON advisor.decisions (user_id, created_at DESC);

CREATE TABLE IF NOT EXISTS advisor.ai_conversations (
	id         UUID PRIMARY KEY,
	user_id    BIGINT NOT NULL REFERENCES advisor.users(id) ON DELETE CASCADE,
	title      TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS advisor.ai_messages (
	id              BIGSERIAL PRIMARY KEY,
	conversation_id UUID NOT NULL REFERENCES advisor.ai_conversations(id) ON DELETE CASCADE,
	role            TEXT NOT NULL,
	body_enc        TEXT NOT NULL,
	hmac            TEXT NOT NULL,
	created_at      TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS ai_messages_conversation_idx ON advisor.ai_messages (conversation_id, id);
`

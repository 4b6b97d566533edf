package db

// SchemaSQL defines the decision archive schema: one run record per
// simulation, one decision record per extracted decision point.
const SchemaSQL = `
    -- ==========================================================================
    -- RUN TABLE
    -- ==========================================================================
    DEFINE TABLE IF NOT EXISTS run SCHEMAFULL;
    DEFINE FIELD IF NOT EXISTS run_id ON run TYPE string;
    DEFINE FIELD IF NOT EXISTS days ON run TYPE int;
    DEFINE FIELD IF NOT EXISTS turn_count ON run TYPE int;
    DEFINE FIELD IF NOT EXISTS decision_count ON run TYPE int;
    DEFINE FIELD IF NOT EXISTS journey_months ON run TYPE int;
    DEFINE FIELD IF NOT EXISTS simulation_period ON run TYPE option<string>;
    DEFINE FIELD IF NOT EXISTS archived ON run TYPE datetime DEFAULT time::now();

    DEFINE INDEX IF NOT EXISTS run_run_id ON run FIELDS run_id UNIQUE;

    -- ==========================================================================
    -- DECISION TABLE
    -- ==========================================================================
    DEFINE TABLE IF NOT EXISTS decision SCHEMAFULL;
    DEFINE FIELD IF NOT EXISTS run_id ON decision TYPE string;
    DEFINE FIELD IF NOT EXISTS decision_id ON decision TYPE int;
    DEFINE FIELD IF NOT EXISTS day ON decision TYPE int;
    DEFINE FIELD IF NOT EXISTS date ON decision TYPE string;
    DEFINE FIELD IF NOT EXISTS time ON decision TYPE string;
    DEFINE FIELD IF NOT EXISTS user_message ON decision TYPE string;
    DEFINE FIELD IF NOT EXISTS agent_name ON decision TYPE string;
    DEFINE FIELD IF NOT EXISTS recommendations ON decision TYPE array<string>;
    DEFINE FIELD IF NOT EXISTS possible_paths ON decision TYPE array<string>;
    DEFINE FIELD IF NOT EXISTS health_domain ON decision TYPE string;
    DEFINE FIELD IF NOT EXISTS urgency_level ON decision TYPE string;
    DEFINE FIELD IF NOT EXISTS complexity ON decision TYPE string;
    DEFINE FIELD IF NOT EXISTS reasons ON decision TYPE array<string>;
    DEFINE FIELD IF NOT EXISTS archived ON decision TYPE datetime DEFAULT time::now();

    DEFINE INDEX IF NOT EXISTS decision_run ON decision FIELDS run_id;
    DEFINE INDEX IF NOT EXISTS decision_domain ON decision FIELDS health_domain;
    DEFINE INDEX IF NOT EXISTS decision_agent ON decision FIELDS agent_name;
    DEFINE ANALYZER IF NOT EXISTS decision_analyzer TOKENIZERS class FILTERS lowercase, ascii, snowball(english);
    DEFINE INDEX IF NOT EXISTS decision_message_ft ON decision FIELDS user_message FULLTEXT ANALYZER decision_analyzer BM25;
`

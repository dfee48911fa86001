package postgresql

func migrations() map[int]string {
	return map[int]string{
		1: `
			-- Create node runs table
			CREATE TABLE node_runs (
				id VARCHAR(255) PRIMARY KEY,
				node_type_id VARCHAR(255) NOT NULL,
				properties JSONB NOT NULL DEFAULT '{}',
				result JSONB,
				error_message TEXT NOT NULL DEFAULT '',
				state VARCHAR(50) NOT NULL CHECK (state IN ('pending', 'complete', 'error')),
				created_at TIMESTAMP WITH TIME ZONE NOT NULL,
				updated_at TIMESTAMP WITH TIME ZONE NOT NULL
			);

			CREATE INDEX idx_node_runs_node_type_id ON node_runs(node_type_id);
			CREATE INDEX idx_node_runs_created_at ON node_runs(created_at);
		`,
	}
}

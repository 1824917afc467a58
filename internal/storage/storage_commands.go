package storage

import "maps"

// AppendCommandToHistory records one command run, keeping the latest entries only.
func (s *Storage) AppendCommandToHistory(scope string, rec CommandHistoryRecord) error {
	record, err := s.getOrCreateRecord(scope)
	if err != nil {
		return err
	}

	record.CommandsHistoryList = append(record.CommandsHistoryList, rec)
	if n := len(record.CommandsHistoryList); n > commandHistoryLimit {
		record.CommandsHistoryList = record.CommandsHistoryList[n-commandHistoryLimit:]
	}
	s.save(scope, record)
	return nil
}

func (s *Storage) FetchCommandHistory(scope string) ([]CommandHistoryRecord, error) {
	record, err := s.getOrCreateRecord(scope)
	if err != nil {
		return nil, err
	}
	return record.CommandsHistoryList, nil
}

// CommandHashes returns the definition hashes last registered for a scope.
func (s *Storage) CommandHashes(scope string) (map[string]string, error) {
	record, err := s.getOrCreateRecord(scope)
	if err != nil {
		return nil, err
	}
	return maps.Clone(record.CommandHashes), nil
}

func (s *Storage) SetCommandHashes(scope string, hashes map[string]string) error {
	record, err := s.getOrCreateRecord(scope)
	if err != nil {
		return err
	}
	record.CommandHashes = maps.Clone(hashes)
	if record.CommandHashes == nil {
		record.CommandHashes = map[string]string{}
	}
	s.save(scope, record)
	return nil
}

func (s *Storage) ClearCommandHashes(scope string) error {
	return s.SetCommandHashes(scope, nil)
}
